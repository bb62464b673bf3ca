// Package form converts between fetched branches and the editable
// settings draft, and builds the wire payload the branches API consumes.
package form

import (
	"fmt"

	"stolik/internal/model"
	"stolik/internal/schedule"
)

// UpdatePayload is the PUT body for a branch settings update. The
// reservation_times value is the API's nested per-weekday tuple-array
// shape: a list of [start, end] string pairs per day.
type UpdatePayload struct {
	ReservationDuration int                          `json:"reservation_duration"`
	EnabledTables       []string                     `json:"enabled_tables"`
	ReservationTimes    map[model.WeekDay][][]string `json:"reservation_times"`
}

// TableOption is one selectable table for the settings dialog.
type TableOption struct {
	Value string
	Label string
}

// InitialValues builds the editable draft from a fetched branch. Stored
// tuples survive only when both halves are regex-valid "HH:MM" strings; a
// day with no survivors gets the single default slot. A nil branch yields
// the all-defaults draft.
func InitialValues(branch *model.Branch) model.FormValues {
	if branch == nil {
		return DefaultValues()
	}

	schedules := make([]model.DaySchedule, 0, len(model.WeekDays))
	for _, day := range model.WeekDays {
		var valid [][]string
		for _, pair := range branch.ReservationTimes[day] {
			if len(pair) == 2 && model.TimeRegexp.MatchString(pair[0]) && model.TimeRegexp.MatchString(pair[1]) {
				valid = append(valid, pair)
			}
		}

		var slots []model.TimeSlot
		if len(valid) > 0 {
			slots = make([]model.TimeSlot, len(valid))
			for i, pair := range valid {
				slots[i] = model.TimeSlot{
					ID:        slotID(day, i),
					StartTime: pair[0],
					EndTime:   pair[1],
				}
			}
		} else {
			slots = []model.TimeSlot{defaultSlot(day)}
		}
		schedules = append(schedules, model.DaySchedule{Day: day, TimeSlots: slots})
	}

	enabledTables := []string{}
	for _, section := range branch.Sections {
		for _, table := range section.Tables {
			if table.AcceptsReservations && table.ID != "" {
				enabledTables = append(enabledTables, table.ID)
			}
		}
	}

	// The branch's duration is carried as-is here, even when zero; only
	// the nil-branch path assumes the default.
	return model.FormValues{
		ReservationDuration: branch.ReservationDuration,
		EnabledTables:       enabledTables,
		Schedules:           schedules,
	}
}

// DefaultValues is the draft for a branch we know nothing about: 60 minute
// duration, no tables, one default slot per day.
func DefaultValues() model.FormValues {
	schedules := make([]model.DaySchedule, 0, len(model.WeekDays))
	for _, day := range model.WeekDays {
		schedules = append(schedules, model.DaySchedule{
			Day:       day,
			TimeSlots: []model.TimeSlot{defaultSlot(day)},
		})
	}
	return model.FormValues{
		ReservationDuration: schedule.DefaultDuration,
		EnabledTables:       []string{},
		Schedules:           schedules,
	}
}

// Payload transforms a draft into the PUT body. Schedule entries with a
// missing day or no slots are skipped silently; an empty enabled_tables
// list passes through, since disabling every table is a valid end state.
func Payload(values model.FormValues) UpdatePayload {
	times := make(map[model.WeekDay][][]string)
	for _, day := range values.Schedules {
		if !day.Day.Valid() || len(day.TimeSlots) == 0 {
			continue
		}
		pairs := make([][]string, len(day.TimeSlots))
		for i, slot := range day.TimeSlots {
			pairs[i] = []string{slot.StartTime, slot.EndTime}
		}
		times[day.Day] = pairs
	}

	enabled := values.EnabledTables
	if enabled == nil {
		enabled = []string{}
	}

	return UpdatePayload{
		ReservationDuration: values.ReservationDuration,
		EnabledTables:       enabled,
		ReservationTimes:    times,
	}
}

// TableOptions flattens every (section, table) pair with both names
// present into selectable options, preserving source order.
func TableOptions(branch *model.Branch) []TableOption {
	if branch == nil {
		return nil
	}
	var options []TableOption
	for _, section := range branch.Sections {
		for _, table := range section.Tables {
			if table.ID == "" || section.Name == "" || table.Name == "" {
				continue
			}
			options = append(options, TableOption{
				Value: table.ID,
				Label: fmt.Sprintf("%s - %s", section.Name, table.Name),
			})
		}
	}
	return options
}

func defaultSlot(day model.WeekDay) model.TimeSlot {
	return model.TimeSlot{
		ID:        slotID(day, 0),
		StartTime: schedule.DefaultSlotStart,
		EndTime:   schedule.DefaultSlotEnd,
	}
}

func slotID(day model.WeekDay, index int) string {
	return fmt.Sprintf("slot-%s-%d", day, index)
}
