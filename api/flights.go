package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/dkoval91/flightinventory/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service inventory.InventoryUseCase
}

type addFlightRequest struct {
	Airline       string `json:"airline" binding:"required"`
	FlightNumber  string `json:"flight_number" binding:"required"`
	FromPlace     string `json:"from_place" binding:"required"`
	ToPlace       string `json:"to_place" binding:"required"`
	DepartureTime string `json:"departure_time" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	PriceCents    int64  `json:"price_cents" binding:"required"`
	TotalSeats    int    `json:"total_seats" binding:"required"`
	Aircraft      string `json:"aircraft" binding:"required"`
}

type flightResponse struct {
	ID             int64  `json:"id"`
	Airline        string `json:"airline"`
	FlightNumber   string `json:"flight_number"`
	FromPlace      string `json:"from_place"`
	ToPlace        string `json:"to_place"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	PriceCents     int64  `json:"price_cents"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	Aircraft       string `json:"aircraft"`
}

func NewFlightHandler(service inventory.InventoryUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "departure_time must be RFC3339"})
		return
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "arrival_time must be RFC3339"})
		return
	}

	flight, err := h.service.RegisterFlight(c.Request.Context(), inventory.RegisterFlightInput{
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		FromPlace:     req.FromPlace,
		ToPlace:       req.ToPlace,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		PriceCents:    req.PriceCents,
		TotalSeats:    req.TotalSeats,
		Aircraft:      req.Aircraft,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(flights))
	for i := range flights {
		resp = append(resp, toFlightResponse(&flights[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) search(c *gin.Context) {
	number := c.Query("flight_number")
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "flight_number is required"})
		return
	}
	flight, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		Airline:        f.Airline,
		FlightNumber:   f.FlightNumber,
		FromPlace:      f.FromPlace,
		ToPlace:        f.ToPlace,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:    f.ArrivalTime.Format(time.RFC3339),
		PriceCents:     f.PriceCents,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		Aircraft:       f.Aircraft,
	}
}
