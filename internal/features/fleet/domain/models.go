package domain

import (
	"errors"
	"time"
)

// Direction is a truck's journey direction along the corridor.
type Direction string

const (
	DirectionGoing     Direction = "GOING"
	DirectionReturning Direction = "RETURNING"
	DirectionUnknown   Direction = "UNKNOWN"
)

// ReportType is the kind of tracking report a snapshot was built from.
type ReportType string

const (
	ReportTypeImport  ReportType = "IMPORT"
	ReportTypeNoOrder ReportType = "NO_ORDER"
)

// UnresolvedOrder sorts unresolved positions after every real checkpoint.
const UnresolvedOrder = 9999

var (
	// ErrSnapshotNotFound is returned for an unknown or deleted snapshot id.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrNoSnapshots is returned when no snapshot has been ingested yet.
	ErrNoSnapshots = errors.New("no snapshots available")
	// ErrNoTrucksAtCheckpoint is returned when a checkpoint has no trucks in the snapshot.
	ErrNoTrucksAtCheckpoint = errors.New("no trucks at checkpoint")
	// ErrInvalidListFormat is returned for an unknown copyable list format.
	ErrInvalidListFormat = errors.New("invalid list format")
)

// TruckPosition is one truck's resolved place, direction, and status within a
// snapshot. Positions are written in bulk at ingestion time and only ever
// deleted in bulk with their snapshot.
type TruckPosition struct {
	TruckNo           string     `json:"truck_no"`
	TrailerNo         string     `json:"trailer_no,omitempty"`
	CurrentCheckpoint string     `json:"current_checkpoint"`
	CheckpointOrder   int        `json:"checkpoint_order"`
	Resolved          bool       `json:"resolved"`
	Status            string     `json:"status,omitempty"`
	Direction         Direction  `json:"direction"`
	VehicleType       string     `json:"vehicle_type,omitempty"`
	DepartureDate     *time.Time `json:"departure_date,omitempty"`
	DaysInJourney     *int       `json:"days_in_journey,omitempty"`
	ReturnInfo        string     `json:"return_info,omitempty"`
	FleetGroup        string     `json:"fleet_group"`
	SnapshotID        string     `json:"snapshot_id"`
	ReportDate        time.Time  `json:"report_date"`
}

// FleetGroup is a named sub-grouping of trucks as presented in the source
// report, kept nested for compact snapshot-level rendering.
type FleetGroup struct {
	Name   string          `json:"name"`
	Trucks []TruckPosition `json:"trucks"`
}

// FleetSnapshot is one immutable ingestion result: the fleet's state at a
// report date, with derived summary counters. Apart from soft deletion it is
// never mutated after creation.
type FleetSnapshot struct {
	ID                     string         `json:"id"`
	Timestamp              time.Time      `json:"timestamp"`
	ReportDate             time.Time      `json:"report_date"`
	ReportType             ReportType     `json:"report_type"`
	UploadedBy             string         `json:"uploaded_by,omitempty"`
	FileName               string         `json:"file_name"`
	FileSize               int64          `json:"file_size"`
	FleetGroups            []FleetGroup   `json:"fleet_groups,omitempty"`
	TotalTrucks            int            `json:"total_trucks"`
	GoingTrucks            int            `json:"going_trucks"`
	ReturningTrucks        int            `json:"returning_trucks"`
	UnknownTrucks          int            `json:"unknown_trucks"`
	UnresolvedTrucks       int            `json:"unresolved_trucks"`
	SkippedRows            int            `json:"skipped_rows,omitempty"`
	Warnings               []string       `json:"warnings,omitempty"`
	CheckpointDistribution map[string]int `json:"checkpoint_distribution"`
	DeletedAt              *time.Time     `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the snapshot is soft-deleted.
func (s *FleetSnapshot) IsDeleted() bool {
	return s.DeletedAt != nil
}
