package domain

import "context"

type Cinema struct {
	ID   int
	Name string
}

type Hall struct {
	ID       int
	CinemaID int
	Name     string
}

// HallSummary is the listing shape: hall plus owning cinema name and the
// current size of its seat inventory.
type HallSummary struct {
	HallID     int
	HallName   string
	CinemaName string
	SeatsCount int
}

type HallRepository interface {
	GetAll(ctx context.Context) ([]HallSummary, error)
	GetByCinema(ctx context.Context, cinemaID int) ([]HallSummary, error)
	GetById(ctx context.Context, id int) (*Hall, error)
	Create(ctx context.Context, hall *Hall) error
	Update(ctx context.Context, hall *Hall) error

	// Delete removes the hall and its seats in one transaction. It returns
	// ErrHallInUse while any session or booking still references the hall.
	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, hallID int) (bool, error)
	CinemaExists(ctx context.Context, cinemaID int) (bool, error)
	HasAnySessions(ctx context.Context, hallID int) (bool, error)
	HasAnyBookings(ctx context.Context, hallID int) (bool, error)
}
