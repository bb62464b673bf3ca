package model

// WeekDay is a day key as used by the reservation_times wire format.
// The week starts on Saturday, matching the backend's convention.
type WeekDay string

const (
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
)

// WeekDays is the canonical day order; every iteration over the week in
// the console follows this slice.
var WeekDays = []WeekDay{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid reports whether d is one of the seven known days.
func (d WeekDay) Valid() bool {
	for _, day := range WeekDays {
		if day == d {
			return true
		}
	}
	return false
}

// ParseWeekDay returns the WeekDay for s, or "" and false for anything else.
func ParseWeekDay(s string) (WeekDay, bool) {
	d := WeekDay(s)
	if d.Valid() {
		return d, true
	}
	return "", false
}

// Title returns the day name with an upper-cased first letter for display.
func (d WeekDay) Title() string {
	if d == "" {
		return ""
	}
	s := string(d)
	return string(s[0]-'a'+'A') + s[1:]
}
