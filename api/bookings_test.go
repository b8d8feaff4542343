package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/dkoval91/flightinventory/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, pnr string) (string, error) {
	args := m.Called(ctx, pnr)
	return args.String(0), args.Error(1)
}

func (m *MockBookingUseCase) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) HistoryByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:             7,
		PNR:            "AB12CD",
		FlightID:       4,
		Seats:          30,
		Name:           "Ravi",
		Email:          "ravi@example.com",
		Gender:         domain.GenderMale,
		MealPreference: domain.MealVeg,
		Status:         domain.BookingStatusBooked,
		CreatedAt:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"flight_id":4,"seats":30,"name":"Ravi","email":"ravi@example.com","gender":"MALE","meal_preference":"VEG"}`
	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Book", c.Request.Context(), booking.BookInput{
		FlightID:       4,
		Seats:          30,
		Name:           "Ravi",
		Email:          "ravi@example.com",
		Gender:         domain.GenderMale,
		MealPreference: domain.MealVeg,
	}).Return(sampleBooking(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"pnr":"AB12CD"}`, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_notEnoughSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"flight_id":4,"seats":80,"name":"Ravi","email":"ravi@example.com","gender":"MALE","meal_preference":"VEG"}`
	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Book", c.Request.Context(), mock.AnythingOfType("booking.BookInput")).Return(nil, domain.ErrNotEnoughSeats)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough seats")
}

func TestBookingHandler_create_invalidBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// gender outside the enum is rejected by binding before the engine runs
	body := `{"flight_id":4,"seats":1,"name":"Ravi","email":"ravi@example.com","gender":"UNKNOWN","meal_preference":"VEG"}`
	c.Request = httptest.NewRequest("POST", "/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Book")
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "pnr", Value: "AB12CD"}}
	c.Request = httptest.NewRequest("GET", "/bookings/AB12CD", nil)

	mockService.On("GetByPNR", c.Request.Context(), "AB12CD").Return(sampleBooking(), nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pnr":"AB12CD"`)
	assert.Contains(t, w.Body.String(), `"status":"BOOKED"`)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "pnr", Value: "NOPE42"}}
	c.Request = httptest.NewRequest("GET", "/bookings/NOPE42", nil)

	mockService.On("GetByPNR", c.Request.Context(), "NOPE42").Return(nil, domain.ErrBookingNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PNR not found")
}

func TestBookingHandler_history(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings?email=ravi@example.com", nil)

	mockService.On("HistoryByEmail", c.Request.Context(), "ravi@example.com").Return([]domain.Booking{*sampleBooking()}, nil)

	handler.history(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pnr":"AB12CD"`)
}

func TestBookingHandler_history_missingEmail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	handler.history(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "HistoryByEmail")
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "pnr", Value: "AB12CD"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/AB12CD", nil)

	mockService.On("Cancel", c.Request.Context(), "AB12CD").Return("Booking cancelled", nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Booking cancelled"}`, w.Body.String())
}

func TestBookingHandler_cancel_afterWindow(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "pnr", Value: "AB12CD"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/AB12CD", nil)

	mockService.On("Cancel", c.Request.Context(), "AB12CD").Return("", domain.ErrCancelWindowExpired)

	handler.cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot cancel after 24 hours")
}
