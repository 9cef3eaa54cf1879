package domain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// PresentationType tags how a session is projected.
type PresentationType string

const (
	Presentation2D   PresentationType = "2D"
	Presentation3D   PresentationType = "3D"
	PresentationIMAX PresentationType = "IMAX"
	Presentation4DX  PresentationType = "4DX"
)

// Session is one screening of a movie in a hall over the half-open time range
// [StartTime, EndTime). Cancelled sessions keep their range but leave the
// overlap-checked set until restored.
type Session struct {
	ID               int
	MovieID          int
	HallID           int
	StartTime        time.Time
	EndTime          time.Time
	PresentationType PresentationType
	BasePrice        pgtype.Numeric
	IsCancelled      bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	Version          int
}

// SessionFilter bounds a session listing. From/To apply to the session's own
// start and end respectively; a nil bound means unbounded on that side.
type SessionFilter struct {
	From             *time.Time
	To               *time.Time
	HallID           *int
	MovieID          *int
	IncludeCancelled bool
}

type SessionRepository interface {
	GetById(ctx context.Context, id int) (*Session, error)
	GetAll(ctx context.Context, filter SessionFilter) ([]Session, error)

	// Create and Update persist a session atomically with the no-overlap
	// invariant: the store carries an exclusion constraint over
	// (hall_id, [start_time, end_time)) for active sessions, and both methods
	// return ErrSessionOverlap when the committed write would violate it.
	// Update additionally returns ErrEditConflict when the row version moved
	// under the caller.
	Create(ctx context.Context, session *Session) error
	Update(ctx context.Context, session *Session) error

	// HasOverlap reports whether any active session in the hall overlaps
	// [start, end), optionally excluding one session id (a session never
	// conflicts with itself).
	HasOverlap(ctx context.Context, hallID int, start, end time.Time, excludeSessionID *int) (bool, error)
}
