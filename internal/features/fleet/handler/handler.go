package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/parser"
	"fleet-tracker/internal/features/fleet/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultSnapshotLimit = 20
	maxSnapshotLimit     = 100
	reportDateLayout     = "2006-01-02"
)

// FleetHandler handles the fleet tracking endpoints.
type FleetHandler struct {
	ingest   ports.IngestService
	query    ports.QueryService
	maxBytes int64
}

// NewFleetHandler creates a new FleetHandler. maxBytes caps the accepted
// upload size.
func NewFleetHandler(ingest ports.IngestService, query ports.QueryService, maxBytes int64) *FleetHandler {
	return &FleetHandler{
		ingest:   ingest,
		query:    query,
		maxBytes: maxBytes,
	}
}

// Response is the general API envelope.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	RayID      string      `json:"ray_id,omitempty"`
}

// Pagination describes the window a list response covers.
type Pagination struct {
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
}

func (h *FleetHandler) rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

func (h *FleetHandler) fail(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		status = http.StatusNotFound
		msg = "Snapshot not found"
	case errors.Is(err, domain.ErrNoSnapshots):
		status = http.StatusNotFound
		msg = "No snapshots available yet"
	case errors.Is(err, domain.ErrNoTrucksAtCheckpoint):
		status = http.StatusNotFound
		msg = "No trucks at this checkpoint"
	case errors.Is(err, domain.ErrInvalidListFormat),
		errors.Is(err, parser.ErrUnsupportedFileType):
		status = http.StatusBadRequest
		msg = err.Error()
	default:
		logger.Get().Error("Fleet request failed",
			zap.String("ray_id", h.rayID(c)),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(Response{
		Success: false,
		Message: msg,
		RayID:   h.rayID(c),
	})
}

func (h *FleetHandler) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(Response{
		Success: false,
		Message: msg,
		RayID:   h.rayID(c),
	})
}

// Upload handles POST /fleet-tracking/upload.
// @Summary Ingest a fleet status report
// @Description Parses an uploaded xlsx/xls/csv report and stores the resulting fleet snapshot. Parse-level problems come back as warnings on the snapshot.
// @Tags Fleet
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report spreadsheet (xlsx, xls or csv)"
// @Param reportDate formData string false "Report date, YYYY-MM-DD (defaults to today)"
// @Param uploadedBy formData string false "Name of the person uploading"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /fleet-tracking/upload [post]
func (h *FleetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.badRequest(c, "Missing file field")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".xlsx", ".xls", ".csv":
	default:
		return h.badRequest(c, "Unsupported file type: only xlsx, xls and csv reports are accepted")
	}
	if fileHeader.Size > h.maxBytes {
		return h.badRequest(c, "File too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.fail(c, err)
	}

	reportDate := time.Now()
	if raw := c.FormValue("reportDate"); raw != "" {
		reportDate, err = time.Parse(reportDateLayout, raw)
		if err != nil {
			return h.badRequest(c, "Invalid reportDate, expected YYYY-MM-DD")
		}
	}

	meta := domain.UploadMeta{
		FileName:   fileHeader.Filename,
		Extension:  ext,
		FileSize:   fileHeader.Size,
		UploadedBy: c.FormValue("uploadedBy"),
		ReportDate: reportDate,
	}

	snapshot, err := h.ingest.Ingest(c.Context(), meta, data)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(Response{
		Success: true,
		Message: "Report ingested",
		Data:    snapshot,
	})
}

// ListSnapshots handles GET /fleet-tracking/snapshots.
// @Summary List fleet snapshots
// @Description Lists snapshot summaries newest first.
// @Tags Fleet
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param skip query int false "Offset into the list"
// @Success 200 {object} Response
// @Router /fleet-tracking/snapshots [get]
func (h *FleetHandler) ListSnapshots(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultSnapshotLimit)
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		limit = maxSnapshotLimit
	}
	skip := c.QueryInt("skip")
	if skip < 0 {
		skip = 0
	}

	snapshots, total, err := h.query.ListSnapshots(c.Context(), limit, skip)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{
		Success: true,
		Data:    snapshots,
		Pagination: &Pagination{
			Total: total,
			Limit: limit,
			Skip:  skip,
		},
	})
}

// LatestSnapshot handles GET /fleet-tracking/latest.
// @Summary Get the most recent snapshot
// @Tags Fleet
// @Produce json
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /fleet-tracking/latest [get]
func (h *FleetHandler) LatestSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.query.LatestSnapshot(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: snapshot})
}

// Positions handles GET /fleet-tracking/positions.
// @Summary List truck positions
// @Description Lists a snapshot's positions in route order. All filters are optional; an empty snapshotId targets the latest snapshot.
// @Tags Fleet
// @Produce json
// @Param snapshotId query string false "Snapshot id (defaults to latest)"
// @Param checkpoint query string false "Exact checkpoint name, case-insensitive"
// @Param direction query string false "GOING, RETURNING or UNKNOWN"
// @Param fleetGroup query string false "Fleet group substring"
// @Param search query string false "Truck number substring"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /fleet-tracking/positions [get]
func (h *FleetHandler) Positions(c *fiber.Ctx) error {
	filter := domain.PositionFilter{
		SnapshotID: c.Query("snapshotId"),
		Checkpoint: c.Query("checkpoint"),
		Direction:  c.Query("direction"),
		FleetGroup: c.Query("fleetGroup"),
		TruckNo:    c.Query("search"),
	}

	positions, err := h.query.Positions(c.Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: positions})
}

// TrucksAtCheckpoint handles GET /fleet-tracking/checkpoint/:name.
// @Summary Trucks at a checkpoint
// @Description Returns the trucks presently at a checkpoint, split by direction. Name matching tolerates case and punctuation differences.
// @Tags Fleet
// @Produce json
// @Param name path string true "Checkpoint name"
// @Param snapshotId query string false "Snapshot id (defaults to latest)"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /fleet-tracking/checkpoint/{name} [get]
func (h *FleetHandler) TrucksAtCheckpoint(c *fiber.Ctx) error {
	at, err := h.query.TrucksAtCheckpoint(c.Context(), c.Params("name"), c.Query("snapshotId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: at})
}

// CopyableList handles GET /fleet-tracking/checkpoint/:name/copy.
// @Summary Copy-paste truck list for a checkpoint
// @Tags Fleet
// @Produce json
// @Param name path string true "Checkpoint name"
// @Param format query string false "comma, line, array or detailed (default comma)"
// @Param direction query string false "Restrict to GOING or RETURNING trucks"
// @Param snapshotId query string false "Snapshot id (defaults to latest)"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /fleet-tracking/checkpoint/{name}/copy [get]
func (h *FleetHandler) CopyableList(c *fiber.Ctx) error {
	format := domain.ListFormat(c.Query("format", string(domain.ListFormatComma)))

	list, err := h.query.CopyableList(
		c.Context(),
		c.Params("name"),
		c.Query("snapshotId"),
		c.Query("direction"),
		format,
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: fiber.Map{
		"checkpoint": c.Params("name"),
		"format":     format,
		"list":       list,
	}})
}

// DeleteSnapshot handles DELETE /fleet-tracking/snapshots/:id.
// @Summary Delete a snapshot
// @Description Soft-deletes the snapshot and removes its position rows.
// @Tags Fleet
// @Produce json
// @Param id path string true "Snapshot id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /fleet-tracking/snapshots/{id} [delete]
func (h *FleetHandler) DeleteSnapshot(c *fiber.Ctx) error {
	if err := h.query.DeleteSnapshot(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Message: "Snapshot deleted"})
}

// CheckpointDistribution handles GET /fleet-tracking/stats/distribution.
// @Summary Checkpoint distribution
// @Description Aggregates a snapshot's resolved positions per checkpoint in route order, with direction sub-counts.
// @Tags Fleet
// @Produce json
// @Param snapshotId query string false "Snapshot id (defaults to latest)"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /fleet-tracking/stats/distribution [get]
func (h *FleetHandler) CheckpointDistribution(c *fiber.Ctx) error {
	entries, err := h.query.CheckpointDistribution(c.Context(), c.Query("snapshotId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: entries})
}
