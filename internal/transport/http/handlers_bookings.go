package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/service/bookings"
)

type bookingResponse struct {
	ID              uuid.UUID `json:"id"`
	EventTypeID     uuid.UUID `json:"eventTypeId"`
	InviteeName     string    `json:"inviteeName"`
	InviteeEmail    string    `json:"inviteeEmail"`
	InviteeTimezone string    `json:"inviteeTimezone,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Status          string    `json:"status"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		EventTypeID:     b.EventTypeID,
		InviteeName:     b.InviteeName,
		InviteeEmail:    b.InviteeEmail,
		InviteeTimezone: b.InviteeTimezone,
		Notes:           b.Notes,
		Start:           b.StartTime,
		End:             b.EndTime,
		Status:          string(b.Status),
	}
}

type publicBookRequest struct {
	Start           time.Time `json:"start"`
	InviteeName     string    `json:"inviteeName"`
	InviteeEmail    string    `json:"inviteeEmail"`
	InviteeTimezone string    `json:"inviteeTimezone"`
	Notes           string    `json:"notes"`
}

// publicBook is unauthenticated; the storage layer's uniqueness guarantee
// decides races, so a lost race answers 409 rather than double-booking.
func (s *Server) publicBook(c *gin.Context) {
	log := s.log.With(slog.String("handler", "publicBook"))

	var req publicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := s.bookings.CreatePublic(c.Request.Context(), c.Param("username"), c.Param("slug"), bookings.CreateInput{
		Start:           req.Start,
		InviteeName:     req.InviteeName,
		InviteeEmail:    req.InviteeEmail,
		InviteeTimezone: req.InviteeTimezone,
		Notes:           req.Notes,
	})
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	log.Info("booking created",
		slog.String("booking_id", created.Booking.ID.String()),
		slog.Time("start", created.Booking.StartTime),
	)
	c.JSON(http.StatusCreated, toBookingResponse(created.Booking))
}

func (s *Server) listBookings(c *gin.Context) {
	log := s.log.With(slog.String("handler", "listBookings"))

	list, err := s.bookings.ListUpcoming(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

type bookingStatusRequest struct {
	Status string `json:"status"`
}

// cancelBooking handles PATCH /api/bookings/:id/status. Cancellation is
// the only transition; anything else is rejected.
func (s *Server) cancelBooking(c *gin.Context) {
	log := s.log.With(slog.String("handler", "cancelBooking"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Status != string(domain.BookingStatusCancelled) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be \"cancelled\""})
		return
	}

	booking, err := s.bookings.Cancel(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	log.Info("booking cancelled", slog.String("booking_id", booking.ID.String()))
	c.JSON(http.StatusOK, toBookingResponse(booking))
}
