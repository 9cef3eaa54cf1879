package domain

import "context"

type SeatCategory string

const (
	SeatStandard   SeatCategory = "standard"
	SeatVIP        SeatCategory = "vip"
	SeatAccessible SeatCategory = "accessible"
)

// Seat is one addressable place in a hall. (HallID, RowNumber, SeatNumber) is
// unique; seats are created in batches by the layout generator and destroyed
// only as part of a full-hall regeneration.
type Seat struct {
	ID         int
	HallID     int
	RowNumber  int
	SeatNumber int
	Category   SeatCategory
}

// RowConfig describes one row of a requested layout.
type RowConfig struct {
	RowNumber  int
	SeatsCount int
}

type SeatRepository interface {
	// GetByHall returns the hall's seats ordered by row then seat number.
	GetByHall(ctx context.Context, hallID int) ([]Seat, error)
	AnyForHall(ctx context.Context, hallID int) (bool, error)

	// ReplaceForHall deletes the hall's current seats and inserts the given
	// set as one transaction, re-validating inside it that no booking or
	// session depends on the hall (ErrSeatsLockedByBookings /
	// ErrSeatsLockedBySessions). A failure at any point rolls the whole
	// replacement back.
	ReplaceForHall(ctx context.Context, hallID int, seats []Seat) error
}
