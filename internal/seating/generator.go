// Package seating builds and replaces the seat inventory of a hall from a
// row/seats-per-row configuration. A layout is frozen as soon as any session
// or booking depends on the hall and can only be regenerated before that.
package seating

import (
	"context"
	"sort"

	"github.com/cinehall/cinehall/internal/domain"
)

// Default grid proposed for a hall that has no layout yet.
const (
	DefaultRows        = 10
	DefaultSeatsPerRow = 12
)

type Generator struct {
	seats domain.SeatRepository
	halls domain.HallRepository
}

func New(seats domain.SeatRepository, halls domain.HallRepository) *Generator {
	return &Generator{
		seats: seats,
		halls: halls,
	}
}

// Generate materializes the seat set described by rows and replaces the hall's
// inventory with it. With an empty rows config and allowRegenerate set, the
// config is derived from the hall's existing seats, which makes a no-op
// regenerate reproduce the current layout. The booking lock is checked before
// the session lock, and the delete-then-insert runs as one transaction in the
// repository, which re-validates both locks inside it.
func (g *Generator) Generate(ctx context.Context, hallID int, rows []domain.RowConfig, allowRegenerate bool) ([]domain.Seat, error) {
	exists, err := g.halls.Exists(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("hall %d does not exist", hallID)
	}

	hasBookings, err := g.halls.HasAnyBookings(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if hasBookings {
		return nil, domain.ErrSeatsLockedByBookings
	}

	hasSessions, err := g.halls.HasAnySessions(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if hasSessions {
		return nil, domain.ErrSeatsLockedBySessions
	}

	if len(rows) == 0 {
		if !allowRegenerate {
			return nil, domain.NewValidationError("rows config is empty")
		}

		existing, err := g.seats.GetByHall(ctx, hallID)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			return nil, domain.NewValidationError("rows config is empty and the hall has no seats to derive it from")
		}

		rows = deriveRowConfigs(existing)
	}

	rows, err = normalizeRowConfigs(rows)
	if err != nil {
		return nil, err
	}

	already, err := g.seats.AnyForHall(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if already && !allowRegenerate {
		return nil, domain.ErrSeatsAlreadyGenerated
	}

	seats := materialize(hallID, rows)

	if err := g.seats.ReplaceForHall(ctx, hallID, seats); err != nil {
		return nil, err
	}

	// Re-read so the caller gets persisted ids in display order.
	return g.seats.GetByHall(ctx, hallID)
}

func (g *Generator) SeatsAlreadyGenerated(ctx context.Context, hallID int) (bool, error) {
	return g.seats.AnyForHall(ctx, hallID)
}

// GetSeats returns the hall's seats ordered by row then seat number.
func (g *Generator) GetSeats(ctx context.Context, hallID int) ([]domain.Seat, error) {
	return g.seats.GetByHall(ctx, hallID)
}

// Plan describes the seating state of a hall for the admin surface: the
// current layout when one exists, otherwise a proposed default grid, plus the
// reason editing is locked, if any.
type Plan struct {
	HallID           int
	HallName         string
	Rows             int
	SeatsPerRow      int
	AlreadyGenerated bool
	CanEdit          bool
	LockReason       string
	Seats            []domain.Seat
	RowConfigs       []domain.RowConfig
}

// Seating builds the Plan for a hall. rows/seatsPerRow override the proposed
// grid dimensions and are ignored once a layout exists.
func (g *Generator) Seating(ctx context.Context, hallID int, rows, seatsPerRow *int) (*Plan, error) {
	hall, err := g.halls.GetById(ctx, hallID)
	if err != nil {
		return nil, err
	}

	already, err := g.seats.AnyForHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	var lockReason string

	hasBookings, err := g.halls.HasAnyBookings(ctx, hallID)
	if err != nil {
		return nil, err
	}
	hasSessions, err := g.halls.HasAnySessions(ctx, hallID)
	if err != nil {
		return nil, err
	}

	switch {
	case hasBookings:
		lockReason = domain.ErrSeatsLockedByBookings.Message
	case hasSessions:
		lockReason = domain.ErrSeatsLockedBySessions.Message
	}

	plan := &Plan{
		HallID:           hallID,
		HallName:         hall.Name,
		Rows:             DefaultRows,
		SeatsPerRow:      DefaultSeatsPerRow,
		AlreadyGenerated: already,
		CanEdit:          lockReason == "" && !already,
		LockReason:       lockReason,
	}

	if rows != nil {
		plan.Rows = *rows
	}
	if seatsPerRow != nil {
		plan.SeatsPerRow = *seatsPerRow
	}

	if already {
		seats, err := g.seats.GetByHall(ctx, hallID)
		if err != nil {
			return nil, err
		}
		plan.Seats = seats

		return plan, nil
	}

	plan.RowConfigs = make([]domain.RowConfig, 0, plan.Rows)
	for i := 1; i <= plan.Rows; i++ {
		plan.RowConfigs = append(plan.RowConfigs, domain.RowConfig{RowNumber: i, SeatsCount: plan.SeatsPerRow})
	}

	return plan, nil
}

// deriveRowConfigs rebuilds the row configuration from an existing seat set by
// grouping on row number and counting.
func deriveRowConfigs(seats []domain.Seat) []domain.RowConfig {
	counts := make(map[int]int)
	for _, seat := range seats {
		counts[seat.RowNumber]++
	}

	rows := make([]domain.RowConfig, 0, len(counts))
	for row, count := range counts {
		rows = append(rows, domain.RowConfig{RowNumber: row, SeatsCount: count})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].RowNumber < rows[j].RowNumber })

	return rows
}

// normalizeRowConfigs deduplicates rows, keeping the largest seat count
// supplied for a duplicate row number to tolerate redundant client input, and
// validates the result.
func normalizeRowConfigs(rows []domain.RowConfig) ([]domain.RowConfig, error) {
	merged := make(map[int]int, len(rows))

	for _, row := range rows {
		if row.RowNumber < 1 {
			return nil, domain.NewValidationError("row number must be >= 1")
		}
		if row.SeatsCount < 1 {
			return nil, domain.NewValidationError("seats count must be >= 1")
		}

		if count, ok := merged[row.RowNumber]; !ok || row.SeatsCount > count {
			merged[row.RowNumber] = row.SeatsCount
		}
	}

	normalized := make([]domain.RowConfig, 0, len(merged))
	for row, count := range merged {
		normalized = append(normalized, domain.RowConfig{RowNumber: row, SeatsCount: count})
	}

	sort.Slice(normalized, func(i, j int) bool { return normalized[i].RowNumber < normalized[j].RowNumber })

	return normalized, nil
}

func materialize(hallID int, rows []domain.RowConfig) []domain.Seat {
	var seats []domain.Seat

	for _, row := range rows {
		for n := 1; n <= row.SeatsCount; n++ {
			seats = append(seats, domain.Seat{
				HallID:     hallID,
				RowNumber:  row.RowNumber,
				SeatNumber: n,
				Category:   domain.SeatStandard,
			})
		}
	}

	return seats
}
