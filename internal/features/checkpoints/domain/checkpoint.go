package domain

import (
	"errors"
	"fmt"
	"time"
)

// Country is the country a checkpoint belongs to along the corridor.
type Country string

const (
	CountryKenya  Country = "KENYA"
	CountryUganda Country = "UGANDA"
)

var (
	// ErrInvalidCheckpoint is returned when a checkpoint fails validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
	// ErrCheckpointNotFound is returned when a checkpoint does not exist.
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	// ErrDuplicateCheckpoint is returned when a canonical name is already taken.
	ErrDuplicateCheckpoint = errors.New("checkpoint name already exists")
	// ErrDuplicateOrder is returned when a route order is already taken by an active checkpoint.
	ErrDuplicateOrder = errors.New("checkpoint order already in use")
)

// Coordinates is a WGS84 point for map rendering.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Checkpoint is a named, ordered waypoint along the tracked trucking corridor.
// The canonical Name is the unique identifier; AlternativeNames carry the
// spellings tracking reports are known to use for the same place.
type Checkpoint struct {
	Name                         string       `json:"name"`
	DisplayName                  string       `json:"display_name"`
	Order                        int          `json:"order"`
	Region                       string       `json:"region,omitempty"`
	Country                      Country      `json:"country"`
	Coordinates                  *Coordinates `json:"coordinates,omitempty"`
	RouteSegment                 string       `json:"route_segment,omitempty"`
	IsActive                     bool         `json:"is_active"`
	IsMajor                      bool         `json:"is_major"`
	AlternativeNames             []string     `json:"alternative_names,omitempty"`
	FuelAvailable                bool         `json:"fuel_available"`
	BorderCrossing               bool         `json:"border_crossing"`
	EstimatedDistanceFromStartKm float64      `json:"estimated_distance_from_start_km,omitempty"`
	CreatedAt                    time.Time    `json:"created_at"`
	UpdatedAt                    time.Time    `json:"updated_at"`
	DeletedAt                    *time.Time   `json:"deleted_at,omitempty"`
}

// NewCheckpoint builds a checkpoint with a normalized canonical name and
// validates it.
func NewCheckpoint(name, displayName string, order int, country Country) (*Checkpoint, error) {
	now := time.Now()
	cp := &Checkpoint{
		Name:        Normalize(name),
		DisplayName: displayName,
		Order:       order,
		Country:     country,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cp.DisplayName == "" {
		cp.DisplayName = cp.Name
	}
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	return cp, nil
}

// Validate checks the structural invariants of a checkpoint.
func (c *Checkpoint) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCheckpoint)
	}
	if c.Order <= 0 {
		return fmt.Errorf("%w: order must be positive", ErrInvalidCheckpoint)
	}
	if c.Country != CountryKenya && c.Country != CountryUganda {
		return fmt.Errorf("%w: unknown country %q", ErrInvalidCheckpoint, c.Country)
	}
	return nil
}

// IsDeleted reports whether the checkpoint is soft-deleted.
func (c *Checkpoint) IsDeleted() bool {
	return c.DeletedAt != nil
}
