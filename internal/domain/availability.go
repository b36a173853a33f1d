package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WeeklyRule opens a recurring window on one weekday, expressed in the
// host's local wall-clock time. Weekday follows time.Weekday numbering:
// 0 = Sunday .. 6 = Saturday. Times are zero-padded 24h "HH:MM".
type WeeklyRule struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r WeeklyRule) Validate() error {
	if r.Weekday < 0 || r.Weekday > 6 {
		return errors.New("weekday must be between 0 and 6")
	}
	start, err := parseClock(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid startTime %q", r.StartTime)
	}
	end, err := parseClock(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid endTime %q", r.EndTime)
	}
	if end <= start {
		return errors.New("endTime must be after startTime")
	}
	return nil
}

// Exception overrides the weekly rules for a concrete instant range.
// IsAvailable=false removes any slot overlapping [Start, End); additive
// exceptions (IsAvailable=true) are stored but do not open extra windows.
type Exception struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAvailable bool      `json:"isAvailable"`
}

func (e Exception) Validate() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return errors.New("exception start and end are required")
	}
	if !e.End.After(e.Start) {
		return errors.New("exception end must be after start")
	}
	return nil
}

// AvailabilityRuleSet holds one host's whole availability configuration.
// It is replaced wholesale on every save.
type AvailabilityRuleSet struct {
	bun.BaseModel `bun:"table:availability_rule_sets"`

	ID         uuid.UUID    `bun:"id,pk,type:uuid"`
	HostID     uuid.UUID    `bun:"host_id,notnull,type:uuid"`
	Weekly     []WeeklyRule `bun:"weekly,type:jsonb"`
	Exceptions []Exception  `bun:"exceptions,type:jsonb"`
	CreatedAt  time.Time    `bun:"created_at,notnull"`
	UpdatedAt  time.Time    `bun:"updated_at,notnull"`
}

func (s *AvailabilityRuleSet) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			s.ID = id
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}

// parseClock parses zero-padded 24h "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	min, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hour*60 + min, nil
}
