package calendar

import (
	"sort"
	"time"
)

// Recurrence patterns an event may carry. Anything else degrades to weekly.
const (
	PatternWeekly        = "weekly"
	PatternBiweekly      = "biweekly"
	PatternMonthly       = "monthly"
	PatternFirstSaturday = "first-saturday"
)

// maxOccurrences caps the number of generated dates per event,
// independent of the horizon check.
const maxOccurrences = 52

// Event is one entry of the calendar feed. Synthetic occurrences of a
// recurring event reuse the base event's ID; only Start differs.
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Start             time.Time `json:"date"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurrencePattern string    `json:"recurrencePattern,omitempty"`
}

// DefaultHorizon returns the expansion window used by the calendar feed:
// 3 calendar months from now.
func DefaultHorizon(now time.Time) time.Duration {
	return now.AddDate(0, 3, 0).Sub(now)
}

// Expand returns every input event plus, for recurring events, one synthetic
// copy per future occurrence within (now, now+horizon]. Occurrences at or
// before now are skipped without stopping the walk. The result is sorted
// ascending by start time. Expand never fails: unknown patterns fall back to
// weekly recurrence.
func Expand(events []Event, now time.Time, horizon time.Duration) []Event {
	limit := now.Add(horizon)

	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev)
		if !ev.IsRecurring {
			continue
		}

		next := ev.Start
		for i := 0; i < maxOccurrences; i++ {
			next = advance(next, ev.RecurrencePattern)
			if next.After(limit) {
				break
			}
			if !next.After(now) {
				continue
			}
			occ := ev
			occ.Start = next
			out = append(out, occ)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func advance(t time.Time, pattern string) time.Time {
	switch pattern {
	case PatternBiweekly:
		return t.AddDate(0, 0, 14)
	case PatternMonthly:
		// calendar-native month increment; day-of-month may shift near
		// month-end and that is accepted
		return t.AddDate(0, 1, 0)
	case PatternFirstSaturday:
		return nextFirstSaturday(t)
	default: // weekly, plus the fallback for unknown patterns
		return t.AddDate(0, 0, 7)
	}
}

// nextFirstSaturday moves to the first day of the following month, scans
// forward to the first Saturday and re-applies the base hour/minute.
func nextFirstSaturday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
