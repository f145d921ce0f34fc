package schedule

import "time"

// Available computes the open slots over the policy's rolling window
// starting at asOf. Keys are "2006-01-02" dates, values the remaining
// "HH:MM" slots in ascending order.
//
// holidays holds the hospital's closed dates and booked the occupied
// time-of-day sets, both keyed by date string. A date is dropped entirely
// when it is a holiday or when no slot survives filtering; callers never
// see a date with an empty list. On the asOf date itself, only slots
// strictly later than asOf plus the lead time remain.
func Available(p Policy, asOf time.Time, holidays map[string]struct{}, booked map[string]map[string]struct{}) (map[string][]string, error) {
	grid, err := p.Grid()
	if err != nil {
		return nil, err
	}

	cutoff := asOf.Add(p.LeadTime)
	today := DateOf(asOf).Format(DateLayout)

	open := make(map[string][]string)
	for _, date := range p.Window(asOf) {
		key := date.Format(DateLayout)
		if _, closed := holidays[key]; closed {
			continue
		}

		taken := booked[key]
		var slots []string
		for _, timeOfDay := range grid {
			if _, occupied := taken[timeOfDay]; occupied {
				continue
			}
			if key == today {
				at, err := SlotTime(date, timeOfDay)
				if err != nil {
					return nil, err
				}
				if !at.After(cutoff) {
					continue
				}
			}
			slots = append(slots, timeOfDay)
		}

		if len(slots) > 0 {
			open[key] = slots
		}
	}

	return open, nil
}
