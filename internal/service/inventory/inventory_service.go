package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/dkoval91/flightinventory/internal/repository"
)

type InventoryUseCase interface {
	RegisterFlight(ctx context.Context, input RegisterFlightInput) (*domain.Flight, error)
	FlightExists(ctx context.Context, number string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type InventoryService struct {
	repo  repository.FlightRepository
	cache Cache
}

type RegisterFlightInput struct {
	Airline       string
	FlightNumber  string
	FromPlace     string
	ToPlace       string
	DepartureTime time.Time
	ArrivalTime   time.Time
	PriceCents    int64
	TotalSeats    int
	Aircraft      string
}

func NewInventoryService(repo repository.FlightRepository, cache Cache) *InventoryService {
	return &InventoryService{repo: repo, cache: cache}
}

// RegisterFlight validates the business invariants and persists a new
// flight with available seats initialized to total seats. The duplicate
// check before the insert gives a clean conflict error; the unique index
// on flight_number closes the remaining race.
func (s *InventoryService) RegisterFlight(ctx context.Context, input RegisterFlightInput) (*domain.Flight, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, input.FlightNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrFlightExists
	}

	flight := &domain.Flight{
		Airline:        input.Airline,
		FlightNumber:   input.FlightNumber,
		FromPlace:      input.FromPlace,
		ToPlace:        input.ToPlace,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		PriceCents:     input.PriceCents,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		Aircraft:       input.Aircraft,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func validateRegisterInput(input RegisterFlightInput) error {
	for field, value := range map[string]string{
		"airline":       input.Airline,
		"flight_number": input.FlightNumber,
		"from_place":    input.FromPlace,
		"to_place":      input.ToPlace,
		"aircraft":      input.Aircraft,
	} {
		if strings.TrimSpace(value) == "" {
			return domain.NewValidationError(field, field+" must not be blank")
		}
	}
	if input.PriceCents <= 0 {
		return domain.NewValidationError("price_cents", "price must be > 0")
	}
	if input.TotalSeats <= 0 {
		return domain.NewValidationError("total_seats", "totalSeats must be > 0")
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return domain.NewValidationError("arrival_time", "arrivalTime must be after departureTime")
	}
	return nil
}

func (s *InventoryService) FlightExists(ctx context.Context, number string) (bool, error) {
	return s.repo.ExistsByNumber(ctx, number)
}

func (s *InventoryService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InventoryService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

var _ InventoryUseCase = (*InventoryService)(nil)
