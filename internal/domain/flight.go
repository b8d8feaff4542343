package domain

import "time"

type Flight struct {
	ID             int64
	Airline        string
	FlightNumber   string
	FromPlace      string
	ToPlace        string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	PriceCents     int64
	TotalSeats     int
	AvailableSeats int
	Aircraft       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
