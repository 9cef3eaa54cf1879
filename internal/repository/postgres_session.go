package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id int) (*domain.Session, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, presentation_type,
			base_price, is_cancelled, created_at, updated_at, version
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.HallID,
		&session.StartTime,
		&session.EndTime,
		&session.PresentationType,
		&session.BasePrice,
		&session.IsCancelled,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &session, nil
}

func (p *PostgresSessionRepository) GetAll(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	query := `
		SELECT id, movie_id, hall_id, start_time, end_time, presentation_type,
			base_price, is_cancelled, created_at, updated_at, version
		FROM sessions
		WHERE ($1::timestamptz IS NULL OR start_time >= $1)
			AND ($2::timestamptz IS NULL OR end_time <= $2)
			AND ($3::int IS NULL OR hall_id = $3)
			AND ($4::int IS NULL OR movie_id = $4)
			AND ($5::bool OR NOT is_cancelled)
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query, filter.From, filter.To, filter.HallID, filter.MovieID, filter.IncludeCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)

	for rows.Next() {
		var session domain.Session

		err = rows.Scan(
			&session.ID,
			&session.MovieID,
			&session.HallID,
			&session.StartTime,
			&session.EndTime,
			&session.PresentationType,
			&session.BasePrice,
			&session.IsCancelled,
			&session.CreatedAt,
			&session.UpdatedAt,
			&session.Version,
		)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (movie_id, hall_id, start_time, end_time, presentation_type, base_price, is_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	err := p.db.QueryRow(ctx,
		query,
		session.MovieID,
		session.HallID,
		session.StartTime,
		session.EndTime,
		session.PresentationType,
		session.BasePrice,
		session.IsCancelled).Scan(&session.ID, &session.CreatedAt, &session.Version)

	if err != nil {
		return mapSessionWriteError(err)
	}

	return nil
}

func (p *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET movie_id = $1, hall_id = $2, start_time = $3, end_time = $4,
			presentation_type = $5, base_price = $6, is_cancelled = $7,
			updated_at = NOW(), version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING updated_at, version
	`

	err := p.db.QueryRow(ctx,
		query,
		session.MovieID,
		session.HallID,
		session.StartTime,
		session.EndTime,
		session.PresentationType,
		session.BasePrice,
		session.IsCancelled,
		session.ID,
		session.Version).Scan(&session.UpdatedAt, &session.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return mapSessionWriteError(err)
	}

	return nil
}

// HasOverlap mirrors domain.Overlaps: half-open ranges collide iff
// start_time < end AND end_time > start. Cancelled sessions are outside the
// checked set, and a session never conflicts with itself.
func (p *PostgresSessionRepository) HasOverlap(
	ctx context.Context,
	hallID int,
	start, end time.Time,
	excludeSessionID *int) (bool, error) {

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE hall_id = $1
				AND NOT is_cancelled
				AND start_time < $3
				AND end_time > $2
				AND ($4::int IS NULL OR id <> $4)
		)
	`

	var overlap bool

	err := p.db.QueryRow(ctx, query, hallID, start, end, excludeSessionID).Scan(&overlap)
	if err != nil {
		return false, err
	}

	return overlap, nil
}

// mapSessionWriteError translates constraint failures into domain errors: the
// exclusion constraint over (hall_id, [start_time, end_time)) is the backstop
// that closes the check-then-act race between concurrent writes.
func mapSessionWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return domain.ErrSessionOverlap
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}
