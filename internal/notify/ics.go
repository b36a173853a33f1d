package notify

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/subodh53/BookMySlot/internal/domain"
)

// bookingCalendar renders a one-event iCalendar for a confirmed booking.
// The UID is derived from the booking ID so a re-sent invite replaces the
// previous one in the invitee's calendar instead of duplicating it.
func bookingCalendar(booking domain.Booking, event domain.EventType, host domain.User) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//BookMySlot//EN")

	ve := cal.AddEvent(fmt.Sprintf("booking-%s@bookmyslot", booking.ID))
	ve.SetDtStampTime(time.Now().UTC())
	ve.SetStartAt(booking.StartTime.UTC())
	ve.SetEndAt(booking.EndTime.UTC())
	ve.SetSummary(fmt.Sprintf("%s with %s", event.Title, host.Name))
	ve.SetStatus(ical.ObjectStatusConfirmed)
	ve.SetOrganizer("mailto:"+host.Email, ical.WithCN(host.Name))
	ve.AddAttendee("mailto:"+booking.InviteeEmail, ical.WithCN(booking.InviteeName))

	if desc := eventDescription(booking, event); desc != "" {
		ve.SetDescription(desc)
	}
	if event.LocationURL != "" {
		ve.SetLocation(event.LocationURL)
	}

	return cal.Serialize()
}

func eventDescription(booking domain.Booking, event domain.EventType) string {
	desc := event.Description
	if booking.Notes != "" {
		if desc != "" {
			desc += "\n\n"
		}
		desc += "Notes: " + booking.Notes
	}
	return desc
}
