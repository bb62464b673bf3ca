package model

import "regexp"

// TimeRegexp matches committed "HH:MM" values: 00:00 through 23:59 with
// both halves zero-padded.
var TimeRegexp = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):([0-5][0-9])$`)

// TimeSlot is one contiguous reservable window inside a day. The id is
// client-generated for draft bookkeeping and is never sent to the server.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
}

// DaySchedule is the ordered set of time slots for one weekday.
type DaySchedule struct {
	Day       WeekDay    `json:"day"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// FormValues is the draft projection of a branch's reservation settings
// while it is being edited. All seven weekdays are present, Saturday first.
type FormValues struct {
	ReservationDuration int           `json:"reservation_duration"`
	EnabledTables       []string      `json:"enabled_tables"`
	Schedules           []DaySchedule `json:"schedules"`
}

// MinutesOfDay converts a regexp-valid "HH:MM" string to minutes since
// midnight. Callers must validate with TimeRegexp first; malformed input
// returns -1.
func MinutesOfDay(t string) int {
	if !TimeRegexp.MatchString(t) {
		return -1
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + minutes
}
