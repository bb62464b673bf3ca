package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stolik/internal/model"
)

func sampleBranch() *model.Branch {
	return &model.Branch{
		ID:                  "b1",
		Name:                "Downtown",
		Reference:           "B01",
		AcceptsReservations: true,
		ReservationDuration: 45,
		Sections: []model.Section{
			{
				ID:   "s1",
				Name: "Main Hall",
				Tables: []model.Table{
					{ID: "t1", Name: "T1", AcceptsReservations: true},
					{ID: "t2", Name: "T2", AcceptsReservations: false},
				},
			},
			{
				ID:   "s2",
				Name: "Terrace",
				Tables: []model.Table{
					{ID: "t3", Name: "T3", AcceptsReservations: true},
					{ID: "", Name: "Ghost", AcceptsReservations: true},
				},
			},
		},
		ReservationTimes: map[model.WeekDay][][]string{
			model.Saturday: {{"10:00", "14:00"}, {"16:00", "22:00"}},
			model.Sunday:   {{"10:00", "14:00"}},
			model.Monday:   {{"25:00", "14:00"}},        // invalid hour
			model.Tuesday:  {{"10:00"}},                 // not a pair
			model.Friday:   {{"", ""}, {"9:00", "bad"}}, // empty and malformed
		},
	}
}

func TestInitialValues(t *testing.T) {
	values := InitialValues(sampleBranch())

	assert.Equal(t, 45, values.ReservationDuration)
	assert.Equal(t, []string{"t1", "t3"}, values.EnabledTables)
	assert.Len(t, values.Schedules, 7)

	byDay := map[model.WeekDay]model.DaySchedule{}
	for _, s := range values.Schedules {
		byDay[s.Day] = s
	}

	sat := byDay[model.Saturday]
	assert.Len(t, sat.TimeSlots, 2)
	assert.Equal(t, "slot-saturday-0", sat.TimeSlots[0].ID)
	assert.Equal(t, "10:00", sat.TimeSlots[0].StartTime)
	assert.Equal(t, "slot-saturday-1", sat.TimeSlots[1].ID)
	assert.Equal(t, "22:00", sat.TimeSlots[1].EndTime)

	// Malformed and missing days fall back to the single default slot.
	for _, day := range []model.WeekDay{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday} {
		slots := byDay[day].TimeSlots
		assert.Len(t, slots, 1, "day %s", day)
		assert.Equal(t, "09:00", slots[0].StartTime)
		assert.Equal(t, "17:00", slots[0].EndTime)
	}
}

func TestInitialValuesNilBranch(t *testing.T) {
	values := InitialValues(nil)
	assert.Equal(t, 60, values.ReservationDuration)
	assert.Empty(t, values.EnabledTables)
	assert.Len(t, values.Schedules, 7)
	for _, s := range values.Schedules {
		assert.Len(t, s.TimeSlots, 1)
	}
}

func TestInitialValuesKeepsZeroDuration(t *testing.T) {
	branch := sampleBranch()
	branch.ReservationDuration = 0
	values := InitialValues(branch)
	assert.Equal(t, 0, values.ReservationDuration, "branch duration is reproduced, not defaulted")
}

func TestPayload(t *testing.T) {
	values := model.FormValues{
		ReservationDuration: 30,
		EnabledTables:       nil,
		Schedules: []model.DaySchedule{
			{Day: model.Saturday, TimeSlots: []model.TimeSlot{
				{ID: "a", StartTime: "10:00", EndTime: "14:00"},
				{ID: "b", StartTime: "16:00", EndTime: "22:00"},
			}},
			{Day: model.WeekDay("someday"), TimeSlots: []model.TimeSlot{
				{ID: "c", StartTime: "10:00", EndTime: "14:00"},
			}},
			{Day: model.Sunday, TimeSlots: nil},
		},
	}

	payload := Payload(values)

	assert.Equal(t, 30, payload.ReservationDuration)
	assert.NotNil(t, payload.EnabledTables)
	assert.Empty(t, payload.EnabledTables, "disabling all tables is a valid end state")

	assert.Len(t, payload.ReservationTimes, 1, "invalid day and empty day are skipped")
	assert.Equal(t, [][]string{{"10:00", "14:00"}, {"16:00", "22:00"}}, payload.ReservationTimes[model.Saturday])
}

func TestRoundTrip(t *testing.T) {
	branch := sampleBranch()
	payload := Payload(InitialValues(branch))

	// Regex-valid stored tuples reproduce exactly.
	assert.Equal(t, branch.ReservationTimes[model.Saturday], payload.ReservationTimes[model.Saturday])
	assert.Equal(t, branch.ReservationTimes[model.Sunday], payload.ReservationTimes[model.Sunday])

	// Malformed stored tuples were replaced by the default slot, and the
	// payload reflects the default rather than the original data.
	assert.Equal(t, [][]string{{"09:00", "17:00"}}, payload.ReservationTimes[model.Monday])
	assert.Equal(t, [][]string{{"09:00", "17:00"}}, payload.ReservationTimes[model.Friday])
}

func TestTableOptions(t *testing.T) {
	options := TableOptions(sampleBranch())

	assert.Equal(t, []TableOption{
		{Value: "t1", Label: "Main Hall - T1"},
		{Value: "t2", Label: "Main Hall - T2"},
		{Value: "t3", Label: "Terrace - T3"},
	}, options)

	assert.Nil(t, TableOptions(nil))
}
