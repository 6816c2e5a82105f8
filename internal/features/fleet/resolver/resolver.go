package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	checkpointdomain "fleet-tracker/internal/features/checkpoints/domain"
	checkpointports "fleet-tracker/internal/features/checkpoints/ports"
	"fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/parser"
)

// departureLayouts are the date spellings seen in tracking reports, tried in
// order.
var departureLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-Jan-06",
	"02 Jan 2006",
	"2006-01-02 15:04:05",
}

// Resolver maps raw truck records onto canonical checkpoints and classifies
// journey direction. It only reads from the registry.
type Resolver struct {
	registry   checkpointports.CheckpointRegistry
	classifier domain.DirectionClassifier
}

// New creates a Resolver.
func New(registry checkpointports.CheckpointRegistry, classifier domain.DirectionClassifier) *Resolver {
	return &Resolver{
		registry:   registry,
		classifier: classifier,
	}
}

// ResolveAll resolves every parsed record against the checkpoint registry.
// It returns the positions in input order plus the count of records whose
// location did not match any checkpoint.
func (r *Resolver) ResolveAll(ctx context.Context, res *parser.ParseResult, reportDate time.Time) ([]domain.TruckPosition, int, error) {
	positions := make([]domain.TruckPosition, 0, len(res.Records))
	unresolved := 0

	for _, rec := range res.Records {
		pos, err := r.resolve(ctx, rec, res.ReportType, reportDate)
		if err != nil {
			return nil, 0, err
		}
		if !pos.Resolved {
			unresolved++
		}
		positions = append(positions, pos)
	}
	return positions, unresolved, nil
}

func (r *Resolver) resolve(ctx context.Context, rec parser.RawRecord, reportType domain.ReportType, reportDate time.Time) (domain.TruckPosition, error) {
	pos := domain.TruckPosition{
		TruckNo:     rec.TruckNo,
		TrailerNo:   rec.TrailerNo,
		Status:      rec.RawStatus,
		VehicleType: rec.VehicleType,
		ReturnInfo:  rec.RawJourneyText,
		FleetGroup:  rec.FleetGroup,
		ReportDate:  reportDate,
	}

	match, err := r.registry.Resolve(ctx, rec.RawLocation)
	if err != nil {
		return domain.TruckPosition{}, fmt.Errorf("resolver: checkpoint lookup failed: %w", err)
	}
	if match.Tier != checkpointdomain.MatchNone {
		pos.CurrentCheckpoint = match.Checkpoint.Name
		pos.CheckpointOrder = match.Checkpoint.Order
		pos.Resolved = true
	} else {
		// Keep the raw text so operators can still see where the report
		// claims the truck is; the sentinel order sorts it last.
		pos.CurrentCheckpoint = strings.TrimSpace(rec.RawLocation)
		pos.CheckpointOrder = domain.UnresolvedOrder
	}

	pos.Direction = r.classifier.Classify(reportType, rec.RawStatus, rec.RawJourneyText)

	if dep, ok := parseDepartureDate(rec.DepartureDate); ok {
		pos.DepartureDate = &dep
		if !reportDate.IsZero() {
			if days := wholeDays(dep, reportDate); days >= 0 {
				pos.DaysInJourney = &days
			}
		}
	}

	return pos, nil
}

// parseDepartureDate tries the known report date layouts.
func parseDepartureDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range departureLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// wholeDays is the whole-day difference between two dates, ignoring the time
// of day.
func wholeDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
