package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type MealType string

const (
	MealVeg    MealType = "VEG"
	MealNonVeg MealType = "NONVEG"
)

// Booking keeps passenger details captured at booking time and a
// reference to the flight. The PNR is the public reference code.
type Booking struct {
	ID             int64
	PNR            string
	FlightID       int64
	Seats          int
	Name           string
	Email          string
	Gender         Gender
	MealPreference MealType
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
