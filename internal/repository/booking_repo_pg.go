package repository

import (
	"context"
	"errors"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	Cancel(ctx context.Context, booking *domain.Booking) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create decrements the flight's available seats and inserts the booking
// in one transaction. The conditional UPDATE is the serialization point:
// two concurrent bookings cannot both pass the capacity check, so
// available_seats never goes below zero.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var available int
	err = tx.QueryRow(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2 RETURNING available_seats`,
		booking.FlightID, booking.Seats).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotEnoughSeats
	}
	if err != nil {
		return err
	}

	booking.Status = domain.BookingStatusBooked
	err = tx.QueryRow(ctx, `INSERT INTO bookings (pnr, flight_id, seats, name, email, gender, meal_preference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.PNR, booking.FlightID, booking.Seats, booking.Name, booking.Email, booking.Gender, booking.MealPreference, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrPNRTaken
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, pnr, flight_id, seats, name, email, gender, meal_preference, status, created_at, updated_at FROM bookings WHERE pnr=$1`, pnr)
	var b domain.Booking
	err := row.Scan(&b.ID, &b.PNR, &b.FlightID, &b.Seats, &b.Name, &b.Email, &b.Gender, &b.MealPreference, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, pnr, flight_id, seats, name, email, gender, meal_preference, status, created_at, updated_at FROM bookings WHERE email=$1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.PNR, &b.FlightID, &b.Seats, &b.Name, &b.Email, &b.Gender, &b.MealPreference, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Cancel restores the booked seats on the flight and deletes the booking
// in one transaction. If the booking was already removed by a concurrent
// cancel the transaction rolls back, so seats are never restored twice.
func (r *PGBookingRepository) Cancel(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = LEAST(available_seats + $2, total_seats), updated_at = now() WHERE id=$1`,
		booking.FlightID, booking.Seats)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}

	cmd, err = tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, booking.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return tx.Commit(ctx)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
