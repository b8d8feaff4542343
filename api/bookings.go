package api

import (
	"net/http"
	"time"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/dkoval91/flightinventory/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID       int64  `json:"flight_id" binding:"required"`
	Seats          int    `json:"seats" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Gender         string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	MealPreference string `json:"meal_preference" binding:"required,oneof=VEG NONVEG"`
}

type bookingResponse struct {
	PNR            string `json:"pnr"`
	FlightID       int64  `json:"flight_id"`
	Seats          int    `json:"seats"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	MealPreference string `json:"meal_preference"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.history)
	router.GET("/:pnr", h.get)
	router.DELETE("/:pnr", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	booked, err := h.service.Book(c.Request.Context(), booking.BookInput{
		FlightID:       req.FlightID,
		Seats:          req.Seats,
		Name:           req.Name,
		Email:          req.Email,
		Gender:         domain.Gender(req.Gender),
		MealPreference: domain.MealType(req.MealPreference),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// Clients only need the reference code on creation.
	c.JSON(http.StatusCreated, gin.H{"pnr": booked.PNR})
}

func (h *BookingHandler) get(c *gin.Context) {
	booked, err := h.service.GetByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booked))
}

func (h *BookingHandler) history(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}
	bookings, err := h.service.HistoryByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	msg, err := h.service.Cancel(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		PNR:            b.PNR,
		FlightID:       b.FlightID,
		Seats:          b.Seats,
		Name:           b.Name,
		Email:          b.Email,
		Gender:         string(b.Gender),
		MealPreference: string(b.MealPreference),
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}
