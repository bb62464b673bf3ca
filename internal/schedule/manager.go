package schedule

import (
	"github.com/google/uuid"

	"stolik/internal/model"
)

// Default window for a slot added without explicit times.
const (
	DefaultSlotStart = "09:00"
	DefaultSlotEnd   = "17:00"
)

// SlotField names an editable half of a time slot.
type SlotField string

const (
	FieldStartTime SlotField = "start_time"
	FieldEndTime   SlotField = "end_time"
)

// NewSlotID generates a fresh client-side slot id. Ids exist only for
// draft bookkeeping and are never sent to the server.
func NewSlotID() string {
	return uuid.New().String()
}

// Every mutation below replaces the schedule and slot slices wholesale
// instead of editing elements in place, so observers holding the previous
// draft can detect the change by identity.

// AddTimeSlot appends a default slot to the given day. No-op once the day
// holds MaxSlotsPerDay slots or when the day is absent from the draft.
func AddTimeSlot(values *model.FormValues, day model.WeekDay) {
	dayIdx := dayIndex(values, day)
	if dayIdx < 0 || len(values.Schedules[dayIdx].TimeSlots) >= MaxSlotsPerDay {
		return
	}

	updated := cloneSchedules(values.Schedules)
	updated[dayIdx].TimeSlots = append(updated[dayIdx].TimeSlots, model.TimeSlot{
		ID:        NewSlotID(),
		StartTime: DefaultSlotStart,
		EndTime:   DefaultSlotEnd,
	})
	values.Schedules = updated
}

// RemoveTimeSlot deletes the slot at index from the given day. A day must
// always retain at least one slot, so removal from a single-slot day is a
// no-op, as is a bad index.
func RemoveTimeSlot(values *model.FormValues, day model.WeekDay, index int) {
	dayIdx := dayIndex(values, day)
	if dayIdx < 0 {
		return
	}
	slots := values.Schedules[dayIdx].TimeSlots
	if len(slots) <= 1 || index < 0 || index >= len(slots) {
		return
	}

	updated := cloneSchedules(values.Schedules)
	remaining := make([]model.TimeSlot, 0, len(slots)-1)
	remaining = append(remaining, slots[:index]...)
	remaining = append(remaining, slots[index+1:]...)
	updated[dayIdx].TimeSlots = remaining
	values.Schedules = updated
}

// UpdateTimeSlot replaces one field of the slot at index, preserving the
// identity and order of every other slot.
func UpdateTimeSlot(values *model.FormValues, day model.WeekDay, index int, field SlotField, value string) {
	dayIdx := dayIndex(values, day)
	if dayIdx < 0 {
		return
	}
	slots := values.Schedules[dayIdx].TimeSlots
	if index < 0 || index >= len(slots) {
		return
	}

	updated := cloneSchedules(values.Schedules)
	replaced := make([]model.TimeSlot, len(slots))
	copy(replaced, slots)
	switch field {
	case FieldStartTime:
		replaced[index].StartTime = value
	case FieldEndTime:
		replaced[index].EndTime = value
	default:
		return
	}
	updated[dayIdx].TimeSlots = replaced
	values.Schedules = updated
}

// ApplySaturdaySchedule clones Saturday's slots into every other weekday,
// overwriting their prior slots entirely. Every clone gets a fresh id so
// no two days share slot ids.
func ApplySaturdaySchedule(values *model.FormValues) {
	satIdx := dayIndex(values, model.Saturday)
	if satIdx < 0 {
		return
	}
	source := values.Schedules[satIdx].TimeSlots

	updated := cloneSchedules(values.Schedules)
	for i := range updated {
		cloned := make([]model.TimeSlot, len(source))
		for j, slot := range source {
			cloned[j] = model.TimeSlot{
				ID:        NewSlotID(),
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			}
		}
		updated[i].TimeSlots = cloned
	}
	values.Schedules = updated
}

// SlotsForDay returns the slot list for day, or nil when absent.
func SlotsForDay(values *model.FormValues, day model.WeekDay) []model.TimeSlot {
	dayIdx := dayIndex(values, day)
	if dayIdx < 0 {
		return nil
	}
	return values.Schedules[dayIdx].TimeSlots
}

// HasMaxSlots reports whether day already holds the slot cap.
func HasMaxSlots(values *model.FormValues, day model.WeekDay) bool {
	return len(SlotsForDay(values, day)) >= MaxSlotsPerDay
}

func dayIndex(values *model.FormValues, day model.WeekDay) int {
	for i, s := range values.Schedules {
		if s.Day == day {
			return i
		}
	}
	return -1
}

func cloneSchedules(schedules []model.DaySchedule) []model.DaySchedule {
	cloned := make([]model.DaySchedule, len(schedules))
	copy(cloned, schedules)
	return cloned
}
