package domain

import (
	"time"
)

// Slot is a bookable window derived at query time. Instants are UTC.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotRequest carries everything GenerateSlots needs. StartDate and
// EndDate are calendar dates: only their year/month/day components are
// used, interpreted in Timezone. Now is the instant minimum notice is
// measured against; callers inject it so results are reproducible.
type SlotRequest struct {
	Timezone         string
	Weekly           []WeeklyRule
	Exceptions       []Exception
	StartDate        time.Time
	EndDate          time.Time
	DurationMinutes  int
	BufferBefore     int
	BufferAfter      int
	MinNoticeMinutes int
	Now              time.Time
}

// GenerateSlots expands weekly rules over the requested date range into
// concrete bookable slots. Missing timezone, duration, or rules yield an
// empty result rather than an error; callers treat unusable configuration
// the same as "no availability". The same applies to a timezone the zone
// database does not know.
//
// Each matching rule window is shrunk by the buffers, then walked in
// steps of the slot duration; slots are back-to-back, never overlapping
// within one rule. Candidates starting before Now+MinNoticeMinutes or
// overlapping a blocking exception are dropped.
//
// DST handling: a rule whose start or end names a wall-clock time that
// does not exist on a given day (spring-forward gap) contributes nothing
// that day. Ambiguous fall-back times resolve to the instant the zone
// database yields. Slot steps inside a window are absolute durations, so
// a window spanning a transition never emits a slot in the gap.
func GenerateSlots(req SlotRequest) []Slot {
	if req.Timezone == "" || req.DurationMinutes <= 0 || len(req.Weekly) == 0 {
		return nil
	}
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	bufferBefore := time.Duration(req.BufferBefore) * time.Minute
	bufferAfter := time.Duration(req.BufferAfter) * time.Minute
	notBefore := req.Now.Add(time.Duration(req.MinNoticeMinutes) * time.Minute)

	sy, sm, sd := req.StartDate.Date()
	ey, em, ed := req.EndDate.Date()
	day := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
	lastDay := time.Date(ey, em, ed, 0, 0, 0, 0, loc)

	var out []Slot

	for ; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday())

		for _, rule := range req.Weekly {
			if rule.Weekday != weekday {
				continue
			}

			windowStart, ok := wallClock(day, rule.StartTime, loc)
			if !ok {
				continue
			}
			windowEnd, ok := wallClock(day, rule.EndTime, loc)
			if !ok {
				continue
			}

			windowStart = windowStart.Add(bufferBefore)
			windowEnd = windowEnd.Add(-bufferAfter)
			if !windowEnd.After(windowStart) {
				continue
			}

			for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(duration) {
				slot := Slot{Start: cursor.UTC(), End: cursor.Add(duration).UTC()}
				if slot.Start.Before(notBefore) {
					continue
				}
				if blockedByException(slot, req.Exceptions) {
					continue
				}
				out = append(out, slot)
			}
		}
	}

	return out
}

func blockedByException(slot Slot, exceptions []Exception) bool {
	for _, ex := range exceptions {
		if ex.IsAvailable {
			continue
		}
		if slot.Start.Before(ex.End) && slot.End.After(ex.Start) {
			return true
		}
	}
	return false
}

// wallClock resolves "HH:MM" on day's date in loc. The second return is
// false when the clock string is malformed or the wall time does not
// exist on that day: time.Date normalizes times inside a DST gap, so a
// round-trip mismatch on hour or minute marks a nonexistent time.
func wallClock(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	minutes, err := parseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	hour, min := minutes/60, minutes%60
	t := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
	if t.Hour() != hour || t.Minute() != min {
		return time.Time{}, false
	}
	return t, true
}
