package domain

// FilterBooked removes every slot that overlaps one of the given
// bookings. Intervals are half-open, so a slot that ends exactly when a
// booking starts (or vice versa) survives. The caller is responsible for
// restricting bookings to the confirmed ones for the host and event type
// being queried; no status check happens here.
func FilterBooked(slots []Slot, bookings []Booking) []Slot {
	if len(bookings) == 0 {
		return slots
	}

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		booked := false
		for _, b := range bookings {
			if s.Start.Before(b.EndTime) && s.End.After(b.StartTime) {
				booked = true
				break
			}
		}
		if !booked {
			out = append(out, s)
		}
	}
	return out
}
