package handler

import (
	"errors"
	"net/http"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/checkpoints/domain"
	"fleet-tracker/internal/features/checkpoints/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckpointHandler handles the checkpoint admin endpoints. Every mutation
// invalidates the registry cache; the ingestion pipeline never mutates
// checkpoints.
type CheckpointHandler struct {
	repo     ports.CheckpointRepository
	registry ports.CheckpointRegistry
}

// NewCheckpointHandler creates a new CheckpointHandler.
func NewCheckpointHandler(repo ports.CheckpointRepository, registry ports.CheckpointRegistry) *CheckpointHandler {
	return &CheckpointHandler{
		repo:     repo,
		registry: registry,
	}
}

// Response is the general API envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	RayID   string `json:"ray_id,omitempty"`
}

// CheckpointRequest is the request body for creating or updating a checkpoint.
type CheckpointRequest struct {
	Name                         string              `json:"name"`
	DisplayName                  string              `json:"display_name"`
	Order                        int                 `json:"order"`
	Region                       string              `json:"region"`
	Country                      domain.Country      `json:"country"`
	Coordinates                  *domain.Coordinates `json:"coordinates"`
	RouteSegment                 string              `json:"route_segment"`
	IsActive                     *bool               `json:"is_active"`
	IsMajor                      bool                `json:"is_major"`
	AlternativeNames             []string            `json:"alternative_names"`
	FuelAvailable                bool                `json:"fuel_available"`
	BorderCrossing               bool                `json:"border_crossing"`
	EstimatedDistanceFromStartKm float64             `json:"estimated_distance_from_start_km"`
}

func (h *CheckpointHandler) rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

func (h *CheckpointHandler) fail(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrCheckpointNotFound):
		status = http.StatusNotFound
		msg = "Checkpoint not found"
	case errors.Is(err, domain.ErrInvalidCheckpoint),
		errors.Is(err, domain.ErrDuplicateCheckpoint),
		errors.Is(err, domain.ErrDuplicateOrder):
		status = http.StatusBadRequest
		msg = err.Error()
	default:
		logger.Get().Error("Checkpoint request failed",
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

// ListCheckpoints handles GET /checkpoints.
// @Summary List checkpoints
// @Description Lists active checkpoints in route order; pass all=true to include inactive and deleted ones.
// @Tags Checkpoints
// @Produce json
// @Param all query bool false "Include inactive and soft-deleted checkpoints"
// @Success 200 {object} Response
// @Router /checkpoints [get]
func (h *CheckpointHandler) ListCheckpoints(c *fiber.Ctx) error {
	var (
		cps []domain.Checkpoint
		err error
	)
	if c.QueryBool("all") {
		cps, err = h.repo.List(c.Context())
	} else {
		cps, err = h.registry.LoadActive(c.Context())
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Data: cps})
}

// CreateCheckpoint handles POST /checkpoints.
// @Summary Create a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param checkpoint body CheckpointRequest true "Checkpoint details"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /checkpoints [post]
func (h *CheckpointHandler) CreateCheckpoint(c *fiber.Ctx) error {
	var req CheckpointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(Response{
			Success: false,
			Message: "Invalid request body",
			RayID:   h.rayID(c),
		})
	}

	cp, err := domain.NewCheckpoint(req.Name, req.DisplayName, req.Order, req.Country)
	if err != nil {
		return h.fail(c, err)
	}
	applyRequest(cp, &req)

	ctx := c.Context()
	if _, err := h.repo.Get(ctx, cp.Name); err == nil {
		return h.fail(c, domain.ErrDuplicateCheckpoint)
	} else if !errors.Is(err, domain.ErrCheckpointNotFound) {
		return h.fail(c, err)
	}

	if err := h.checkOrderFree(c, cp.Order, cp.Name); err != nil {
		return h.fail(c, err)
	}

	if err := h.repo.Save(ctx, cp); err != nil {
		return h.fail(c, err)
	}
	h.registry.Invalidate()

	return c.Status(http.StatusCreated).JSON(Response{
		Success: true,
		Message: "Checkpoint created",
		Data:    cp,
	})
}

// UpdateCheckpoint handles PUT /checkpoints/:name.
// @Summary Update a checkpoint
// @Tags Checkpoints
// @Accept json
// @Produce json
// @Param name path string true "Canonical checkpoint name"
// @Param checkpoint body CheckpointRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /checkpoints/{name} [put]
func (h *CheckpointHandler) UpdateCheckpoint(c *fiber.Ctx) error {
	var req CheckpointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(Response{
			Success: false,
			Message: "Invalid request body",
			RayID:   h.rayID(c),
		})
	}

	ctx := c.Context()
	cp, err := h.repo.Get(ctx, c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}

	if req.Order != 0 && req.Order != cp.Order {
		if err := h.checkOrderFree(c, req.Order, cp.Name); err != nil {
			return h.fail(c, err)
		}
		cp.Order = req.Order
	}
	if req.DisplayName != "" {
		cp.DisplayName = req.DisplayName
	}
	if req.Country != "" {
		cp.Country = req.Country
	}
	applyRequest(cp, &req)
	cp.UpdatedAt = time.Now()

	if err := cp.Validate(); err != nil {
		return h.fail(c, err)
	}
	if err := h.repo.Save(ctx, cp); err != nil {
		return h.fail(c, err)
	}
	h.registry.Invalidate()

	return c.JSON(Response{Success: true, Message: "Checkpoint updated", Data: cp})
}

// DeleteCheckpoint handles DELETE /checkpoints/:name.
// @Summary Soft-delete a checkpoint
// @Tags Checkpoints
// @Produce json
// @Param name path string true "Canonical checkpoint name"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /checkpoints/{name} [delete]
func (h *CheckpointHandler) DeleteCheckpoint(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("name")); err != nil {
		return h.fail(c, err)
	}
	h.registry.Invalidate()

	return c.JSON(Response{Success: true, Message: "Checkpoint deleted"})
}

// ReloadRegistry handles POST /checkpoints/reload.
// @Summary Force a registry cache reload
// @Tags Checkpoints
// @Produce json
// @Success 200 {object} Response
// @Router /checkpoints/reload [post]
func (h *CheckpointHandler) ReloadRegistry(c *fiber.Ctx) error {
	if err := h.registry.Reload(c.Context()); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(Response{Success: true, Message: "Registry reloaded"})
}

// checkOrderFree verifies no other active checkpoint holds the given order.
func (h *CheckpointHandler) checkOrderFree(c *fiber.Ctx, order int, selfName string) error {
	cps, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}
	for _, existing := range cps {
		if existing.Name == selfName || existing.IsDeleted() || !existing.IsActive {
			continue
		}
		if existing.Order == order {
			return domain.ErrDuplicateOrder
		}
	}
	return nil
}

// applyRequest copies the optional descriptive fields onto a checkpoint.
func applyRequest(cp *domain.Checkpoint, req *CheckpointRequest) {
	cp.Region = req.Region
	cp.Coordinates = req.Coordinates
	cp.RouteSegment = req.RouteSegment
	cp.IsMajor = req.IsMajor
	cp.AlternativeNames = req.AlternativeNames
	cp.FuelAvailable = req.FuelAvailable
	cp.BorderCrossing = req.BorderCrossing
	cp.EstimatedDistanceFromStartKm = req.EstimatedDistanceFromStartKm
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
	}
}
