// Package scheduler decides whether a proposed screening may occupy a hall and
// drives the cancel/restore lifecycle of sessions. Among the non-cancelled
// sessions of a hall no two time ranges ever overlap; cancelled sessions keep
// their range but leave the checked set until restored.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

type Service struct {
	sessions domain.SessionRepository
	halls    domain.HallRepository
}

func New(sessions domain.SessionRepository, halls domain.HallRepository) *Service {
	return &Service{
		sessions: sessions,
		halls:    halls,
	}
}

// EditRequest carries the caller-supplied fields for creating or updating a
// session.
type EditRequest struct {
	MovieID          int
	HallID           int
	StartTime        time.Time
	EndTime          time.Time
	PresentationType domain.PresentationType
	BasePrice        pgtype.Numeric
}

// Create schedules a new active session and returns its id. The overlap
// pre-check here gives a friendly failure; the repository's exclusion
// constraint closes the race between two concurrent creates that both pass it.
func (s *Service) Create(ctx context.Context, req EditRequest) (int, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return 0, err
	}

	exists, err := s.halls.Exists(ctx, req.HallID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.NewNotFoundError("hall %d does not exist", req.HallID)
	}

	overlap, err := s.sessions.HasOverlap(ctx, req.HallID, req.StartTime, req.EndTime, nil)
	if err != nil {
		return 0, err
	}
	if overlap {
		return 0, domain.ErrSessionOverlap
	}

	session := &domain.Session{
		MovieID:          req.MovieID,
		HallID:           req.HallID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PresentationType: req.PresentationType,
		BasePrice:        req.BasePrice,
		IsCancelled:      false,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return 0, err
	}

	return session.ID, nil
}

// Update edits an active session, re-validating the time range and the
// no-overlap invariant against the (possibly new) hall. Cancelled sessions
// must be restored before they can be edited.
func (s *Service) Update(ctx context.Context, id int, req EditRequest) (*domain.Session, error) {
	session, err := s.sessions.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.IsCancelled {
		return nil, domain.ErrSessionCancelled
	}

	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	overlap, err := s.sessions.HasOverlap(ctx, req.HallID, req.StartTime, req.EndTime, &id)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrSessionOverlap
	}

	session.MovieID = req.MovieID
	session.HallID = req.HallID
	session.StartTime = req.StartTime
	session.EndTime = req.EndTime
	session.PresentationType = req.PresentationType
	session.BasePrice = req.BasePrice

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Cancel takes a session out of the overlap-checked set. Cancelling an
// already-cancelled session is a no-op success.
func (s *Service) Cancel(ctx context.Context, id int) error {
	session, err := s.sessions.GetById(ctx, id)
	if err != nil {
		return err
	}

	if session.IsCancelled {
		return nil
	}

	session.IsCancelled = true

	return s.sessions.Update(ctx, session)
}

// Restore re-activates a cancelled session, re-validating its stored time
// range against the hall's current active sessions. Restoring an active
// session is a no-op success.
func (s *Service) Restore(ctx context.Context, id int) error {
	session, err := s.sessions.GetById(ctx, id)
	if err != nil {
		return err
	}

	if !session.IsCancelled {
		return nil
	}

	overlap, err := s.sessions.HasOverlap(ctx, session.HallID, session.StartTime, session.EndTime, &id)
	if err != nil {
		return err
	}
	if overlap {
		return domain.ErrRestoreOverlap
	}

	session.IsCancelled = false

	if err := s.sessions.Update(ctx, session); err != nil {
		// A concurrent write can take the slot between the pre-check and the
		// update; report it the same way the pre-check would have.
		if errors.Is(err, domain.ErrSessionOverlap) {
			return domain.ErrRestoreOverlap
		}

		return err
	}

	return nil
}

func (s *Service) GetById(ctx context.Context, id int) (*domain.Session, error) {
	return s.sessions.GetById(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	return s.sessions.GetAll(ctx, filter)
}

func validateTimeRange(start, end time.Time) error {
	if !start.Before(end) {
		return domain.NewValidationError("start time must be before end time")
	}

	return nil
}
