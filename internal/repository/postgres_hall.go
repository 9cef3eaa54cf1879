package repository

import (
	"context"
	"errors"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]domain.HallSummary, error) {
	query := `
		SELECT h.id, h.name, c.name, COUNT(s.id)
		FROM halls h
		JOIN cinemas c ON h.cinema_id = c.id
		LEFT JOIN seats s ON s.hall_id = h.id
		GROUP BY h.id, h.name, c.name
		ORDER BY c.name, h.name
	`

	return p.querySummaries(ctx, query)
}

func (p *PostgresHallRepository) GetByCinema(ctx context.Context, cinemaID int) ([]domain.HallSummary, error) {
	query := `
		SELECT h.id, h.name, c.name, COUNT(s.id)
		FROM halls h
		JOIN cinemas c ON h.cinema_id = c.id
		LEFT JOIN seats s ON s.hall_id = h.id
		WHERE h.cinema_id = $1
		GROUP BY h.id, h.name, c.name
		ORDER BY h.name
	`

	return p.querySummaries(ctx, query, cinemaID)
}

func (p *PostgresHallRepository) querySummaries(ctx context.Context, query string, args ...any) ([]domain.HallSummary, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.HallSummary, 0)

	for rows.Next() {
		var hall domain.HallSummary

		err = rows.Scan(&hall.HallID, &hall.HallName, &hall.CinemaName, &hall.SeatsCount)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	var hall domain.Hall

	err := p.db.QueryRow(ctx, `SELECT id, cinema_id, name FROM halls WHERE id = $1`, id).
		Scan(&hall.ID, &hall.CinemaID, &hall.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	query := `INSERT INTO halls (cinema_id, name) VALUES ($1, $2) RETURNING id`

	err := p.db.QueryRow(ctx, query, hall.CinemaID, hall.Name).Scan(&hall.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.NewValidationError("cinema %d does not exist", hall.CinemaID)
		}

		return err
	}

	return nil
}

func (p *PostgresHallRepository) Update(ctx context.Context, hall *domain.Hall) error {
	query := `UPDATE halls SET cinema_id = $1, name = $2 WHERE id = $3`

	tag, err := p.db.Exec(ctx, query, hall.CinemaID, hall.Name, hall.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.NewValidationError("cinema %d does not exist", hall.CinemaID)
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Delete removes a hall and its seats in one transaction, refusing while any
// session or booking still references the hall. Deleting a missing hall is a
// no-op.
func (p *PostgresHallRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var inUse bool

		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1
				FROM bookings b
				JOIN sessions s ON b.session_id = s.id
				WHERE s.hall_id = $1
			) OR EXISTS (SELECT 1 FROM sessions WHERE hall_id = $1)`, id).Scan(&inUse)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrHallInUse
		}

		_, err = tx.Exec(ctx, `DELETE FROM seats WHERE hall_id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)

		return err
	})
}

func (p *PostgresHallRepository) Exists(ctx context.Context, hallID int) (bool, error) {
	return p.exists(ctx, `SELECT EXISTS (SELECT 1 FROM halls WHERE id = $1)`, hallID)
}

func (p *PostgresHallRepository) CinemaExists(ctx context.Context, cinemaID int) (bool, error) {
	return p.exists(ctx, `SELECT EXISTS (SELECT 1 FROM cinemas WHERE id = $1)`, cinemaID)
}

func (p *PostgresHallRepository) HasAnySessions(ctx context.Context, hallID int) (bool, error) {
	return p.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE hall_id = $1)`, hallID)
}

func (p *PostgresHallRepository) HasAnyBookings(ctx context.Context, hallID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings b
			JOIN sessions s ON b.session_id = s.id
			WHERE s.hall_id = $1
		)
	`

	return p.exists(ctx, query, hallID)
}

func (p *PostgresHallRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, query, arg).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
