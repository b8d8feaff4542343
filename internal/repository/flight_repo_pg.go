package repository

import (
	"context"
	"errors"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context) ([]domain.Flight, error)
	AuditSeatAccounting(ctx context.Context) ([]SeatAuditRow, error)
}

// SeatAuditRow reports a flight whose seat counters disagree with the
// sum of its active bookings.
type SeatAuditRow struct {
	FlightID       int64
	FlightNumber   string
	TotalSeats     int
	AvailableSeats int
	BookedSeats    int
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (airline, flight_number, from_place, to_place, departure_time, arrival_time, price_cents, total_seats, available_seats, aircraft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		f.Airline, f.FlightNumber, f.FromPlace, f.ToPlace, f.DepartureTime, f.ArrivalTime, f.PriceCents, f.TotalSeats, f.AvailableSeats, f.Aircraft).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrFlightExists
	}
	return err
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, airline, flight_number, from_place, to_place, departure_time, arrival_time, price_cents, total_seats, available_seats, aircraft, created_at, updated_at FROM flights WHERE id=$1`, id))
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, airline, flight_number, from_place, to_place, departure_time, arrival_time, price_cents, total_seats, available_seats, aircraft, created_at, updated_at FROM flights WHERE flight_number=$1`, number))
}

func (r *PGFlightRepository) scanOne(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.FromPlace, &f.ToPlace, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.Aircraft, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE flight_number=$1)`, number).Scan(&exists)
	return exists, err
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, airline, flight_number, from_place, to_place, departure_time, arrival_time, price_cents, total_seats, available_seats, aircraft, created_at, updated_at FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.FromPlace, &f.ToPlace, &f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats, &f.Aircraft, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// AuditSeatAccounting finds flights where total_seats - available_seats
// no longer equals the sum of seats across active bookings.
func (r *PGFlightRepository) AuditSeatAccounting(ctx context.Context) ([]SeatAuditRow, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.flight_number, f.total_seats, f.available_seats, COALESCE(SUM(b.seats), 0)
		FROM flights f
		LEFT JOIN bookings b ON b.flight_id = f.id
		GROUP BY f.id, f.flight_number, f.total_seats, f.available_seats
		HAVING f.total_seats - f.available_seats <> COALESCE(SUM(b.seats), 0)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []SeatAuditRow
	for rows.Next() {
		var row SeatAuditRow
		if err := rows.Scan(&row.FlightID, &row.FlightNumber, &row.TotalSeats, &row.AvailableSeats, &row.BookedSeats); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
