package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain failures to transport status codes. Anything
// unclassified is an infrastructure failure: logged in full, returned
// to the client as an opaque 500.
func writeError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Reason, "field": validationErr.Field})
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrFlightExists),
		errors.Is(err, domain.ErrNotEnoughSeats),
		errors.Is(err, domain.ErrCancelWindowExpired),
		errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrCancelInProgress):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong on server"})
	}
}
