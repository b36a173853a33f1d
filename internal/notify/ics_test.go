package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
)

func TestBookingCalendar(t *testing.T) {
	booking := domain.Booking{
		ID:           uuid.MustParse("00000000-0000-0000-0000-000000000077"),
		InviteeName:  "Ada",
		InviteeEmail: "ada@example.com",
		Notes:        "bring laptop",
		StartTime:    time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC),
	}
	event := domain.EventType{
		Title:       "Intro Call",
		Description: "Quick intro",
		LocationURL: "https://meet.example.com/abc",
	}
	host := domain.User{Name: "Sam Host", Email: "sam@example.com"}

	out := bookingCalendar(booking, event, host)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:booking-00000000-0000-0000-0000-000000000077@bookmyslot",
		"DTSTART:20260105T140000Z",
		"DTEND:20260105T143000Z",
		"SUMMARY:Intro Call with Sam Host",
		"STATUS:CONFIRMED",
		"mailto:sam@example.com",
		"mailto:ada@example.com",
		"LOCATION:https://meet.example.com/abc",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
}

func TestBuildMessage_WithAttachment(t *testing.T) {
	msg := buildMessage("from@x", "to@y", "Confirmed", "hello", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	for _, want := range []string{
		"From: from@x",
		"To: to@y",
		"Subject: Confirmed",
		"multipart/mixed",
		"text/calendar",
		"Content-Transfer-Encoding: base64",
		"filename=invite.ics",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildMessage_PlainWithoutICS(t *testing.T) {
	msg := buildMessage("from@x", "to@y", "Hi", "body", "")
	if strings.Contains(msg, "multipart") {
		t.Fatalf("plain message should not be multipart:\n%s", msg)
	}
	if !strings.Contains(msg, "text/plain") || !strings.Contains(msg, "body") {
		t.Fatalf("plain message malformed:\n%s", msg)
	}
}
