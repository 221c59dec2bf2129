package availability

import (
	"time"

	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// Validate checks the invariants of an availability window: a sane
// wall-clock range of at least one hour, day-of-week in 0..6, and the
// recurring / specific-date exclusivity rules. A one-off window must not
// sit in the past relative to today.
func Validate(w *models.AvailabilityWindow, today time.Time) error {
	if _, err := ParseHM(w.StartTime); err != nil {
		return schederr.New(schederr.KindInvalidWindow, "start_time must be HH:MM")
	}
	if _, err := ParseHM(w.EndTime); err != nil {
		return schederr.New(schederr.KindInvalidWindow, "end_time must be HH:MM")
	}

	d, _ := Duration(w.StartTime, w.EndTime)
	if d <= 0 {
		return schederr.New(schederr.KindInvalidWindow, "end time must be after start time")
	}
	if d < time.Hour {
		return schederr.New(schederr.KindInvalidWindow, "window must be at least 1 hour long")
	}

	if w.IsRecurring {
		if w.SpecificDate != nil {
			return schederr.New(schederr.KindInvalidWindow, "recurring window must not carry a specific date")
		}
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return schederr.New(schederr.KindInvalidWindow, "day of week must be 0 (Sunday) to 6 (Saturday)")
		}
		return nil
	}

	if w.SpecificDate == nil {
		return schederr.New(schederr.KindInvalidWindow, "one-off window must carry a specific date")
	}
	if w.SpecificDate.Before(DateOnly(today)) {
		return schederr.New(schederr.KindInvalidWindow, "specific date must not be in the past")
	}
	return nil
}

// Overlaps reports whether two windows of the same psychologist collide:
// they apply to the same day (same weekday when both recurring, same
// specific date when both one-off) and their [start, end) ranges
// intersect. A recurring and a one-off window never conflict.
func Overlaps(a, b *models.AvailabilityWindow) bool {
	switch {
	case a.IsRecurring && b.IsRecurring:
		if a.DayOfWeek != b.DayOfWeek {
			return false
		}
	case !a.IsRecurring && !b.IsRecurring:
		if a.SpecificDate == nil || b.SpecificDate == nil {
			return false
		}
		if !SameDate(*a.SpecificDate, *b.SpecificDate) {
			return false
		}
	default:
		return false
	}

	return a.StartTime < b.EndTime && a.EndTime > b.StartTime
}

// AppliesTo reports whether the window covers the given calendar date.
func AppliesTo(w *models.AvailabilityWindow, date time.Time) bool {
	if w.IsRecurring {
		return int(date.Weekday()) == w.DayOfWeek
	}
	return w.SpecificDate != nil && SameDate(*w.SpecificDate, date)
}

// SlotStartTimes lists the hourly slot starts the window can hold: every
// full hour from start while start+1h still fits before end.
func SlotStartTimes(w *models.AvailabilityWindow) []string {
	var starts []string
	cur := w.StartTime
	for {
		end := AddHours(cur, 1)
		if end == "" || end > w.EndTime {
			break
		}
		starts = append(starts, cur)
		cur = end
	}
	return starts
}

// Covers reports whether a slot's [start, end) range lies inside the
// window's wall-clock range on a date the window applies to.
func Covers(w *models.AvailabilityWindow, slotDate time.Time, startHM, endHM string) bool {
	if !AppliesTo(w, slotDate) {
		return false
	}
	return startHM >= w.StartTime && endHM <= w.EndTime
}
