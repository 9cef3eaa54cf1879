package repository

import (
	"context"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Advisory lock class for seat layout changes; the hall id is the second key.
const seatLayoutLockClass = 2001

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	query := `
		SELECT id, hall_id, row_number, seat_number, category
		FROM seats
		WHERE hall_id = $1
		ORDER BY row_number, seat_number
	`

	rows, err := p.db.Query(ctx, query, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.HallID, &seat.RowNumber, &seat.SeatNumber, &seat.Category)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) AnyForHall(ctx context.Context, hallID int) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seats WHERE hall_id = $1)`, hallID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ReplaceForHall swaps the hall's seat set in one transaction. A per-hall
// advisory lock serializes concurrent replacements, and the booking/session
// locks are re-validated inside the transaction so a gating check that passed
// before the transaction began cannot go stale. Any failure rolls back and
// leaves the previous layout intact.
func (p *PostgresSeatRepository) ReplaceForHall(ctx context.Context, hallID int, seats []domain.Seat) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, seatLayoutLockClass, hallID)
		if err != nil {
			return err
		}

		var locked bool

		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1
				FROM bookings b
				JOIN sessions s ON b.session_id = s.id
				WHERE s.hall_id = $1
			)`, hallID).Scan(&locked)
		if err != nil {
			return err
		}
		if locked {
			return domain.ErrSeatsLockedByBookings
		}

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE hall_id = $1)`, hallID).Scan(&locked)
		if err != nil {
			return err
		}
		if locked {
			return domain.ErrSeatsLockedBySessions
		}

		_, err = tx.Exec(ctx, `DELETE FROM seats WHERE hall_id = $1`, hallID)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			rows = append(rows, []any{
				hallID,
				seat.RowNumber,
				seat.SeatNumber,
				seat.Category,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"hall_id", "row_number", "seat_number", "category"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		return nil
	})
}
