// Package notify sends booking confirmation emails with calendar invites.
// Delivery is best-effort: a booking that fails to email is still booked.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/subodh53/BookMySlot/internal/domain"
)

type Notifier struct {
	mailer Mailer
	logger *slog.Logger
}

func New(mailer Mailer, logger *slog.Logger) *Notifier {
	return &Notifier{
		mailer: mailer,
		logger: logger.With("component", "notify"),
	}
}

// BookingConfirmed emails the invitee and the host. It returns immediately;
// delivery happens in the background and failures are only logged.
func (n *Notifier) BookingConfirmed(booking domain.Booking, event domain.EventType, host domain.User) {
	go func() {
		icsBody := bookingCalendar(booking, event, host)
		subject := fmt.Sprintf("Confirmed: %s with %s", event.Title, host.Name)

		if err := n.mailer.Send(booking.InviteeEmail, subject, inviteeBody(booking, event, host), icsBody); err != nil {
			n.logger.Warn("invitee email failed",
				"booking_id", booking.ID,
				"error", err,
			)
		}
		if err := n.mailer.Send(host.Email, subject, hostBody(booking, event), icsBody); err != nil {
			n.logger.Warn("host email failed",
				"booking_id", booking.ID,
				"error", err,
			)
		}
	}()
}

func inviteeBody(booking domain.Booking, event domain.EventType, host domain.User) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour %s with %s is confirmed for %s.\n\nAn invite is attached.\n",
		booking.InviteeName,
		event.Title,
		host.Name,
		formatStart(booking),
	)
}

func hostBody(booking domain.Booking, event domain.EventType) string {
	return fmt.Sprintf(
		"%s (%s) booked %s for %s.\n",
		booking.InviteeName,
		booking.InviteeEmail,
		event.Title,
		formatStart(booking),
	)
}

// formatStart renders the start in the invitee's timezone when it is known,
// falling back to UTC.
func formatStart(booking domain.Booking) string {
	loc := time.UTC
	if booking.InviteeTimezone != "" {
		if l, err := time.LoadLocation(booking.InviteeTimezone); err == nil {
			loc = l
		}
	}
	return booking.StartTime.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
}
