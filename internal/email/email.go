package email

import (
	"context"
	"fmt"

	"github.com/dkoval91/flightinventory/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %s on flight %d (%d seats)\n", event.Email, event.Type, event.PNR, event.FlightID, event.Seats)
	return nil
}
