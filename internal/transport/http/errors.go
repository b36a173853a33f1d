package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subodh53/BookMySlot/internal/service/auth"
	"github.com/subodh53/BookMySlot/internal/service/availability"
	"github.com/subodh53/BookMySlot/internal/service/bookings"
	"github.com/subodh53/BookMySlot/internal/service/eventtypes"
	"github.com/subodh53/BookMySlot/internal/store"
)

// writeError maps typed service errors to statuses. Unknown errors are
// logged and answered with a generic body so internals never leak.
func (s *Server) writeError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
	default:
		log.Error("request failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidation(err error) bool {
	var (
		authErr  *auth.ValidationError
		eventErr *eventtypes.ValidationError
		availErr *availability.ValidationError
		bookErr  *bookings.ValidationError
	)
	return errors.As(err, &authErr) ||
		errors.As(err, &eventErr) ||
		errors.As(err, &availErr) ||
		errors.As(err, &bookErr)
}
