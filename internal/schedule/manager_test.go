package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stolik/internal/model"
)

func draft() *model.FormValues {
	schedules := make([]model.DaySchedule, len(model.WeekDays))
	for i, day := range model.WeekDays {
		schedules[i] = model.DaySchedule{
			Day: day,
			TimeSlots: []model.TimeSlot{
				{ID: "base-" + string(day), StartTime: "09:00", EndTime: "17:00"},
			},
		}
	}
	return &model.FormValues{
		ReservationDuration: 60,
		EnabledTables:       []string{"t1"},
		Schedules:           schedules,
	}
}

func TestAddTimeSlot(t *testing.T) {
	values := draft()

	AddTimeSlot(values, model.Monday)
	slots := SlotsForDay(values, model.Monday)
	assert.Len(t, slots, 2)
	assert.Equal(t, DefaultSlotStart, slots[1].StartTime)
	assert.Equal(t, DefaultSlotEnd, slots[1].EndTime)
	assert.NotEmpty(t, slots[1].ID)

	AddTimeSlot(values, model.Monday)
	assert.True(t, HasMaxSlots(values, model.Monday))

	// At the cap the add is a no-op.
	AddTimeSlot(values, model.Monday)
	assert.Len(t, SlotsForDay(values, model.Monday), MaxSlotsPerDay)

	// Other days untouched.
	assert.Len(t, SlotsForDay(values, model.Tuesday), 1)
}

func TestRemoveTimeSlot(t *testing.T) {
	values := draft()
	AddTimeSlot(values, model.Friday)
	assert.Len(t, SlotsForDay(values, model.Friday), 2)

	RemoveTimeSlot(values, model.Friday, 0)
	slots := SlotsForDay(values, model.Friday)
	assert.Len(t, slots, 1)

	// A day always retains at least one slot.
	RemoveTimeSlot(values, model.Friday, 0)
	assert.Len(t, SlotsForDay(values, model.Friday), 1)

	// Bad index is a no-op.
	AddTimeSlot(values, model.Friday)
	RemoveTimeSlot(values, model.Friday, 5)
	assert.Len(t, SlotsForDay(values, model.Friday), 2)
}

func TestUpdateTimeSlot(t *testing.T) {
	values := draft()
	AddTimeSlot(values, model.Sunday)
	before := SlotsForDay(values, model.Sunday)

	UpdateTimeSlot(values, model.Sunday, 1, FieldStartTime, "12:00")
	after := SlotsForDay(values, model.Sunday)

	assert.Equal(t, "12:00", after[1].StartTime)
	assert.Equal(t, before[1].EndTime, after[1].EndTime)
	// Untouched slot keeps its identity and order.
	assert.Equal(t, before[0], after[0])

	UpdateTimeSlot(values, model.Sunday, 1, FieldEndTime, "15:30")
	assert.Equal(t, "15:30", SlotsForDay(values, model.Sunday)[1].EndTime)

	// Unknown field and bad index are no-ops.
	UpdateTimeSlot(values, model.Sunday, 1, SlotField("duration"), "x")
	UpdateTimeSlot(values, model.Sunday, 9, FieldStartTime, "x")
	assert.Equal(t, "12:00", SlotsForDay(values, model.Sunday)[1].StartTime)
}

func TestUpdateReplacesSliceIdentity(t *testing.T) {
	values := draft()
	before := values.Schedules

	UpdateTimeSlot(values, model.Monday, 0, FieldStartTime, "10:00")

	// The draft gets a fresh schedules slice; the old one is untouched.
	// Monday sits at index 2 in the Saturday-first week.
	assert.Equal(t, "09:00", before[2].TimeSlots[0].StartTime)
	assert.Equal(t, "10:00", SlotsForDay(values, model.Monday)[0].StartTime)
}

func TestApplySaturdaySchedule(t *testing.T) {
	values := draft()
	AddTimeSlot(values, model.Saturday)
	UpdateTimeSlot(values, model.Saturday, 1, FieldStartTime, "18:00")
	UpdateTimeSlot(values, model.Saturday, 1, FieldEndTime, "22:00")

	priorIDs := map[string]bool{}
	for _, day := range model.WeekDays {
		for _, slot := range SlotsForDay(values, day) {
			priorIDs[slot.ID] = true
		}
	}

	ApplySaturdaySchedule(values)

	saturday := SlotsForDay(values, model.Saturday)
	seen := map[string]bool{}
	for _, day := range model.WeekDays {
		slots := SlotsForDay(values, day)
		assert.Len(t, slots, len(saturday))
		for i, slot := range slots {
			assert.Equal(t, saturday[i].StartTime, slot.StartTime)
			assert.Equal(t, saturday[i].EndTime, slot.EndTime)
			assert.False(t, priorIDs[slot.ID], "clone must not reuse a prior id")
			assert.False(t, seen[slot.ID], "ids must be unique across days")
			seen[slot.ID] = true
		}
	}
}

func TestSlotsForUnknownDay(t *testing.T) {
	values := &model.FormValues{}
	assert.Nil(t, SlotsForDay(values, model.Monday))
	assert.False(t, HasMaxSlots(values, model.Monday))

	// Mutations against an absent day are no-ops.
	AddTimeSlot(values, model.Monday)
	RemoveTimeSlot(values, model.Monday, 0)
	ApplySaturdaySchedule(values)
	assert.Empty(t, values.Schedules)
}
