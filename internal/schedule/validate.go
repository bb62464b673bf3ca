// Package schedule validates weekly reservation schedules and edits the
// per-day time-slot lists of a settings draft.
package schedule

import (
	"fmt"

	"stolik/internal/model"
)

// DefaultDuration is the reservation duration assumed when a draft carries
// none (minutes).
const DefaultDuration = 60

// MaxSlotsPerDay caps the number of time slots a single day may hold.
const MaxSlotsPerDay = 3

// Validate checks the weekly schedule against the reservation duration in
// minutes. It fails fast: days are checked in list order, slots in index
// order, and the first violation is returned as the whole result. The
// returned error text is operator-facing and stable for a given input.
func Validate(schedules []model.DaySchedule, duration int) error {
	if duration <= 0 {
		duration = DefaultDuration
	}

	for _, day := range schedules {
		if len(day.TimeSlots) == 0 {
			return fmt.Errorf("%s must have at least one time slot", day.Day)
		}
		if len(day.TimeSlots) > MaxSlotsPerDay {
			return fmt.Errorf("%s cannot have more than %d time slots", day.Day, MaxSlotsPerDay)
		}

		for i, slot := range day.TimeSlots {
			if !model.TimeRegexp.MatchString(slot.StartTime) || !model.TimeRegexp.MatchString(slot.EndTime) {
				return fmt.Errorf("Invalid time format for %s slot %d", day.Day, i+1)
			}

			start := model.MinutesOfDay(slot.StartTime)
			end := model.MinutesOfDay(slot.EndTime)
			if start >= end {
				return fmt.Errorf("Start time must be before end time for %s slot %d", day.Day, i+1)
			}
			if end-start < duration {
				return fmt.Errorf("Time slot on %s (slot %d) must be at least %d minutes long", day.Day, i+1, duration)
			}

			for j := i + 1; j < len(day.TimeSlots); j++ {
				other := day.TimeSlots[j]
				// Malformed later slots surface as format errors on
				// their own pass; they never count as overlaps.
				if !model.TimeRegexp.MatchString(other.StartTime) || !model.TimeRegexp.MatchString(other.EndTime) {
					continue
				}
				otherStart := model.MinutesOfDay(other.StartTime)
				otherEnd := model.MinutesOfDay(other.EndTime)
				// Half-open intervals: touching slots do not overlap.
				if start < otherEnd && end > otherStart {
					return fmt.Errorf("Time slots overlap on %s", day.Day)
				}
			}
		}
	}

	return nil
}
