// Package timeinput models an "HH:MM" pair being edited one keystroke at a
// time: digits only, range-clamped, zero-padded once a half is complete.
package timeinput

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	maxHours   = 23
	maxMinutes = 59
)

// Field holds the editable hour and minute halves of one time value.
// A committed "HH:MM" is only produced while both halves are valid.
type Field struct {
	hours   string
	minutes string

	defaultHours   string
	defaultMinutes string
}

// New returns a Field with the given blur defaults. Empty defaults fall
// back to "09" hours and "00" minutes.
func New(defaultHours, defaultMinutes string) *Field {
	if defaultHours == "" {
		defaultHours = "09"
	}
	if defaultMinutes == "" {
		defaultMinutes = "00"
	}
	return &Field{defaultHours: defaultHours, defaultMinutes: defaultMinutes}
}

// Init loads an external time value into the field. The value is split on
// the first colon; missing halves fall back to the defaults.
func (f *Field) Init(value string) {
	if value == "" {
		f.hours = f.defaultHours
		f.minutes = f.defaultMinutes
		return
	}
	hours, minutes, _ := strings.Cut(value, ":")
	if hours == "" {
		hours = f.defaultHours
	}
	if minutes == "" {
		minutes = f.defaultMinutes
	}
	f.hours = hours
	f.minutes = minutes
}

// SetHours applies raw typed input to the hours half.
func (f *Field) SetHours(raw string) {
	f.hours = applyInput(f.hours, raw, maxHours)
}

// SetMinutes applies raw typed input to the minutes half.
func (f *Field) SetMinutes(raw string) {
	f.minutes = applyInput(f.minutes, raw, maxMinutes)
}

// applyInput filters raw to at most two digits and keeps the previous
// content when the result would exceed max. A completed two-digit entry is
// reformatted immediately; a single digit is left as typed.
func applyInput(prev, raw string, max int) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	limited := digits.String()
	if len(limited) > 2 {
		limited = limited[:2]
	}
	if limited == "" {
		return ""
	}

	num, err := strconv.Atoi(limited)
	if err != nil || num > max {
		return prev
	}
	if len(limited) == 2 {
		return pad(num)
	}
	return limited
}

// BlurHours commits the hours half on focus loss: empty becomes the
// default, anything else is zero-padded and clamped.
func (f *Field) BlurHours() {
	f.hours = blur(f.hours, f.defaultHours, maxHours)
}

// BlurMinutes commits the minutes half on focus loss.
func (f *Field) BlurMinutes() {
	f.minutes = blur(f.minutes, f.defaultMinutes, maxMinutes)
}

func blur(current, fallback string, max int) string {
	if current == "" {
		return fallback
	}
	return pad(clampNum(current, max))
}

// Hours returns the current raw hours content.
func (f *Field) Hours() string { return f.hours }

// Minutes returns the current raw minutes content.
func (f *Field) Minutes() string { return f.minutes }

// Valid reports whether both halves are non-empty and in range.
func (f *Field) Valid() bool {
	return halfValid(f.hours, maxHours) && halfValid(f.minutes, maxMinutes)
}

// Value returns the committed "HH:MM" string. ok is false until both
// halves are valid; the returned string is always zero-padded and clamped.
func (f *Field) Value() (string, bool) {
	if !f.Valid() {
		return "", false
	}
	return fmt.Sprintf("%s:%s", pad(clampNum(f.hours, maxHours)), pad(clampNum(f.minutes, maxMinutes))), true
}

func halfValid(s string, max int) bool {
	if s == "" {
		return false
	}
	num, err := strconv.Atoi(s)
	return err == nil && num >= 0 && num <= max
}

func clampNum(s string, max int) int {
	num, err := strconv.Atoi(s)
	if err != nil || num < 0 {
		return 0
	}
	if num > max {
		return max
	}
	return num
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}
