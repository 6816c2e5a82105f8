package parser

import (
	"strings"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/fleet/domain"

	"go.uber.org/zap"
)

// defaultFleetGroup labels records that appear before any group-header row.
const defaultFleetGroup = "GENERAL"

// headerScanRows is how deep into the sheet the header row is searched for;
// report titles and blank padding rows precede it in practice.
const headerScanRows = 30

// RawRecord is one truck row as it appeared in the report, before checkpoint
// resolution. All fields are untrusted free text.
type RawRecord struct {
	FleetGroup     string
	TruckNo        string
	TrailerNo      string
	RawLocation    string
	RawStatus      string
	VehicleType    string
	DepartureDate  string
	RawJourneyText string
}

// ParseResult is the intermediate output of a report parse: the flat record
// list plus the diagnostics the response surfaces to operators.
type ParseResult struct {
	ReportType  domain.ReportType
	Records     []RawRecord
	SkippedRows int
	Warnings    []string
}

// Parser turns validated spreadsheet bytes into raw truck records. It never
// aborts on malformed rows; a readable but empty or mismatched file yields
// zero records and a warning.
type Parser struct {
	// sheet optionally pins the xlsx worksheet to parse.
	sheet  string
	logger *zap.Logger
}

// New creates a Parser. sheetOverride may be empty to use the first sheet.
func New(sheetOverride string) *Parser {
	return &Parser{
		sheet:  sheetOverride,
		logger: logger.Get(),
	}
}

// Parse reads the file bytes for the detected extension (xlsx, xls, csv) and
// extracts the truck records.
func (p *Parser) Parse(data []byte, ext string) (*ParseResult, error) {
	grid, err := p.readGrid(data, strings.ToLower(strings.TrimPrefix(ext, ".")))
	if err != nil {
		return nil, err
	}
	return p.parseGrid(grid), nil
}

// column indexes into a report row; -1 means the column is absent.
type columnMap struct {
	truck, trailer, location, status, vehicleType, departure, journey int
}

func (m columnMap) valid() bool { return m.truck >= 0 }

// parseGrid runs the shared layout pass over the cell grid.
func (p *Parser) parseGrid(grid [][]string) *ParseResult {
	result := &ParseResult{ReportType: detectReportType(grid)}

	headerRow, cols := findHeader(grid)
	if !cols.valid() {
		result.Warnings = append(result.Warnings,
			"unrecognized report layout: no truck column header found, check report formatting")
		p.logger.Warn("Report layout not recognized", zap.Int("rows", len(grid)))
		return result
	}

	group := defaultFleetGroup
	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]

		truckNo := strings.TrimSpace(cell(row, cols.truck))
		if truckNo == "" {
			if label, ok := groupLabel(row); ok {
				group = label
				continue
			}
			result.SkippedRows++
			continue
		}

		result.Records = append(result.Records, RawRecord{
			FleetGroup:     group,
			TruckNo:        truckNo,
			TrailerNo:      strings.TrimSpace(cell(row, cols.trailer)),
			RawLocation:    strings.TrimSpace(cell(row, cols.location)),
			RawStatus:      strings.TrimSpace(cell(row, cols.status)),
			VehicleType:    strings.TrimSpace(cell(row, cols.vehicleType)),
			DepartureDate:  strings.TrimSpace(cell(row, cols.departure)),
			RawJourneyText: strings.TrimSpace(cell(row, cols.journey)),
		})
	}

	if len(result.Records) == 0 {
		result.Warnings = append(result.Warnings,
			"no truck records found in report, check report formatting")
	}
	if result.SkippedRows > 0 {
		p.logger.Info("Skipped malformed report rows", zap.Int("skipped", result.SkippedRows))
	}
	return result
}

// detectReportType inspects the leading rows for a NO ORDER marker; every
// other recognized layout is an import tracking report.
func detectReportType(grid [][]string) domain.ReportType {
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for _, row := range grid[:limit] {
		for _, c := range row {
			u := strings.ToUpper(c)
			if strings.Contains(u, "NO ORDER") || strings.Contains(u, "NO-ORDER") {
				return domain.ReportTypeNoOrder
			}
		}
	}
	return domain.ReportTypeImport
}

// findHeader locates the column-header row and maps the known columns.
func findHeader(grid [][]string) (int, columnMap) {
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		cols := mapColumns(grid[i])
		if cols.valid() && nonEmptyCells(grid[i]) >= 2 {
			return i, cols
		}
	}
	return -1, columnMap{truck: -1, trailer: -1, location: -1, status: -1, vehicleType: -1, departure: -1, journey: -1}
}

// mapColumns classifies each header cell. Precedence matters: "TRAILER NO"
// and "VEHICLE TYPE" would otherwise be swallowed by the truck-column rule.
func mapColumns(row []string) columnMap {
	cols := columnMap{truck: -1, trailer: -1, location: -1, status: -1, vehicleType: -1, departure: -1, journey: -1}
	for idx, c := range row {
		h := strings.ToUpper(strings.TrimSpace(c))
		if h == "" {
			continue
		}
		switch {
		case strings.Contains(h, "TRAILER"):
			set(&cols.trailer, idx)
		case strings.Contains(h, "TYPE"):
			set(&cols.vehicleType, idx)
		case strings.Contains(h, "TRUCK") || strings.Contains(h, "HORSE") ||
			strings.Contains(h, "VEHICLE NO") || strings.Contains(h, "REG NO") ||
			strings.Contains(h, "FLEET NO"):
			set(&cols.truck, idx)
		case strings.Contains(h, "LOCATION") || strings.Contains(h, "CHECKPOINT") ||
			strings.Contains(h, "POSITION") || strings.Contains(h, "PLACE"):
			set(&cols.location, idx)
		case strings.Contains(h, "STATUS"):
			set(&cols.status, idx)
		case strings.Contains(h, "DEPARTURE") || strings.Contains(h, "DISPATCH") ||
			strings.Contains(h, "LOADED"):
			set(&cols.departure, idx)
		case strings.Contains(h, "REMARK") || strings.Contains(h, "JOURNEY") ||
			strings.Contains(h, "COMMENT") || strings.Contains(h, "RETURN") ||
			strings.Contains(h, "NOTES"):
			set(&cols.journey, idx)
		}
	}
	return cols
}

// set assigns the first matching column only; duplicated headers keep the
// leftmost occurrence.
func set(target *int, idx int) {
	if *target < 0 {
		*target = idx
	}
}

// groupLabel reports whether a row is an inline fleet-group header: a single
// populated cell that is not a truck record.
func groupLabel(row []string) (string, bool) {
	var label string
	count := 0
	for _, c := range row {
		if t := strings.TrimSpace(c); t != "" {
			label = t
			count++
		}
	}
	if count == 1 {
		return label, true
	}
	return "", false
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// cell is a bounds-safe row accessor; idx -1 means the column is absent.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
