package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

const (
	dateLayout          = "2006-01-02"
	defaultRangeDays    = 6
	defaultDurationMins = 30
	defaultNoticeMins   = 60
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service composes the rule store, the slot generator and the booking
// filter into the public availability query, and owns the host-side rule
// write path.
type Service struct {
	users    store.UserRepository
	events   store.EventTypeRepository
	rules    store.AvailabilityRepository
	bookings store.BookingRepository
	now      func() time.Time
}

func NewService(
	users store.UserRepository,
	events store.EventTypeRepository,
	rules store.AvailabilityRepository,
	bookings store.BookingRepository,
) *Service {
	return &Service{
		users:    users,
		events:   events,
		rules:    rules,
		bookings: bookings,
		now:      time.Now,
	}
}

// WithNow fixes the service clock; tests use it to pin "now".
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

type EventSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
}

type HostSummary struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type PublicAvailability struct {
	Event     EventSummary  `json:"event"`
	Host      HostSummary   `json:"host"`
	Timezone  string        `json:"timezone"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Slots     []domain.Slot `json:"slots"`
}

// PublicAvailability resolves the host and event type, expands the weekly
// rules over the requested range and strips slots taken by confirmed
// bookings. startDate/endDate are "YYYY-MM-DD" in the host's timezone;
// both default to a seven-day window starting today.
func (s *Service) PublicAvailability(ctx context.Context, username, slug, startDate, endDate string) (PublicAvailability, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return PublicAvailability{}, err
	}
	eventType, err := s.events.BySlug(ctx, user.ID, slug)
	if err != nil {
		return PublicAvailability{}, err
	}

	timezone := user.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		timezone = "UTC"
	}

	now := s.now()
	today := now.In(loc)
	if startDate == "" {
		startDate = today.Format(dateLayout)
	}
	if endDate == "" {
		endDate = today.AddDate(0, 0, defaultRangeDays).Format(dateLayout)
	}

	startDay, err := time.ParseInLocation(dateLayout, startDate, loc)
	if err != nil {
		return PublicAvailability{}, validationError("invalid start date")
	}
	endDay, err := time.ParseInLocation(dateLayout, endDate, loc)
	if err != nil {
		return PublicAvailability{}, validationError("invalid end date")
	}
	if endDay.Before(startDay) {
		return PublicAvailability{}, validationError("end date before start date")
	}

	out := PublicAvailability{
		Event: EventSummary{
			ID:              eventType.ID,
			Title:           eventType.Title,
			Description:     eventType.Description,
			DurationMinutes: eventType.DurationMinutes,
		},
		Host:      HostSummary{Name: user.Name, Username: user.Username},
		Timezone:  timezone,
		StartDate: startDate,
		EndDate:   endDate,
		Slots:     []domain.Slot{},
	}

	ruleSet, err := s.rules.ByHost(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return out, nil
		}
		return PublicAvailability{}, err
	}
	if len(ruleSet.Weekly) == 0 {
		return out, nil
	}

	duration := eventType.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMins
	}
	minNotice := eventType.MinNoticeMinutes
	if minNotice <= 0 {
		minNotice = defaultNoticeMins
	}

	slots := domain.GenerateSlots(domain.SlotRequest{
		Timezone:         timezone,
		Weekly:           ruleSet.Weekly,
		Exceptions:       ruleSet.Exceptions,
		StartDate:        startDay,
		EndDate:          endDay,
		DurationMinutes:  duration,
		BufferBefore:     eventType.BufferBefore,
		BufferAfter:      eventType.BufferAfter,
		MinNoticeMinutes: minNotice,
		Now:              now,
	})
	if len(slots) == 0 {
		return out, nil
	}

	// Full-day instant span of the requested range in the host zone.
	rangeStart := startDay.UTC()
	rangeEnd := endDay.AddDate(0, 0, 1).UTC()

	booked, err := s.bookings.ListConfirmedInRange(ctx, user.ID, eventType.ID, rangeStart, rangeEnd)
	if err != nil {
		return PublicAvailability{}, err
	}

	out.Slots = domain.FilterBooked(slots, booked)
	return out, nil
}

// RuleSet returns the host's availability, or an empty set when nothing
// has been saved yet; absence is not an error.
func (s *Service) RuleSet(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error) {
	set, err := s.rules.ByHost(ctx, hostID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AvailabilityRuleSet{
				HostID:     hostID,
				Weekly:     []domain.WeeklyRule{},
				Exceptions: []domain.Exception{},
			}, nil
		}
		return domain.AvailabilityRuleSet{}, err
	}
	return set, nil
}

// ReplaceRules validates and stores the host's availability wholesale.
func (s *Service) ReplaceRules(ctx context.Context, hostID uuid.UUID, weekly []domain.WeeklyRule, exceptions []domain.Exception) (domain.AvailabilityRuleSet, error) {
	for _, r := range weekly {
		if err := r.Validate(); err != nil {
			return domain.AvailabilityRuleSet{}, validationError(err.Error())
		}
	}
	for _, ex := range exceptions {
		if err := ex.Validate(); err != nil {
			return domain.AvailabilityRuleSet{}, validationError(err.Error())
		}
	}

	if weekly == nil {
		weekly = []domain.WeeklyRule{}
	}
	if exceptions == nil {
		exceptions = []domain.Exception{}
	}

	return s.rules.Replace(ctx, domain.AvailabilityRuleSet{
		HostID:     hostID,
		Weekly:     weekly,
		Exceptions: exceptions,
	})
}
