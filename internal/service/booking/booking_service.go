package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/dkoval91/flightinventory/internal/kafka"
	"github.com/dkoval91/flightinventory/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Book(ctx context.Context, input BookInput) (*domain.Booking, error)
	Cancel(ctx context.Context, pnr string) (string, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	HistoryByEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
	AcquireCancelLock(ctx context.Context, pnr string, ttl time.Duration) (bool, error)
	ReleaseCancelLock(ctx context.Context, pnr string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

const (
	defaultCancelWindow = 24 * time.Hour
	defaultPNRAttempts  = 5
	cancelLockTTL       = 30 * time.Second
)

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	pnr                PNRGenerator
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	cancelWindow       time.Duration
	pnrAttempts        int
}

type BookInput struct {
	FlightID       int64           `json:"flight_id"`
	Seats          int             `json:"seats"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Gender         domain.Gender   `json:"gender"`
	MealPreference domain.MealType `json:"meal_preference"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithCancelWindow(window time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.cancelWindow = window
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	pnr PNRGenerator,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		pnr:          pnr,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		cancelWindow: defaultCancelWindow,
		pnrAttempts:  defaultPNRAttempts,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves seats on a flight and returns the persisted booking.
// The seat decrement and the booking insert run in one repository
// transaction; the capacity check here is only a fast path, the
// authoritative check is the conditional decrement.
func (s *BookingService) Book(ctx context.Context, input BookInput) (*domain.Booking, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if input.Seats < 1 {
		return nil, domain.NewValidationError("seats", "seats must be > 0")
	}
	if flight.AvailableSeats < input.Seats {
		return nil, domain.ErrNotEnoughSeats
	}

	booking := &domain.Booking{
		FlightID:       flight.ID,
		Seats:          input.Seats,
		Name:           input.Name,
		Email:          input.Email,
		Gender:         input.Gender,
		MealPreference: input.MealPreference,
	}

	for attempt := 0; ; attempt++ {
		booking.PNR = s.pnr.Generate()
		err = s.bookings.Create(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrPNRTaken) && attempt < s.pnrAttempts-1 {
			continue
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for %s: %v", booking.PNR, err)
	}
	return booking, nil
}

// Cancel removes a booking and restores its seats, provided the booking
// is still inside the cancellation window counted from creation time.
func (s *BookingService) Cancel(ctx context.Context, pnr string) (string, error) {
	if s.cache != nil {
		ok, err := s.cache.AcquireCancelLock(ctx, pnr, cancelLockTTL)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrCancelInProgress
		}
		defer func() {
			_ = s.cache.ReleaseCancelLock(ctx, pnr)
		}()
	}

	booking, err := s.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return "", err
	}
	if booking.CreatedAt.IsZero() {
		return "", domain.ErrInvalidState
	}
	if time.Since(booking.CreatedAt) > s.cancelWindow {
		return "", domain.ErrCancelWindowExpired
	}

	// Orphaned bookings (flight gone) are surfaced, not silently dropped.
	if _, err := s.flights.GetByID(ctx, booking.FlightID); err != nil {
		return "", err
	}

	if err := s.bookings.Cancel(ctx, booking); err != nil {
		return "", err
	}

	booking.Status = domain.BookingStatusCancelled
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if err := s.publish(ctx, "booking_cancelled", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for %s: %v", booking.PNR, err)
	}
	return "Booking cancelled", nil
}

func (s *BookingService) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnr)
}

func (s *BookingService) HistoryByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		EventID:   uuid.NewString(),
		PNR:       booking.PNR,
		FlightID:  booking.FlightID,
		Seats:     booking.Seats,
		Email:     booking.Email,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
