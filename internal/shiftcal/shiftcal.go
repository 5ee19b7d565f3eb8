package shiftcal

import (
	"fmt"
	"time"
)

// Shift — одна из трёх фиксированных смен производства.
type Shift string

const (
	ShiftFirst  Shift = "first"  // 06:00–14:00
	ShiftSecond Shift = "second" // 14:00–22:00
	ShiftThird  Shift = "third"  // 22:00–06:00, переходит через полночь
)

// ShiftLength is the nominal length of every shift.
const ShiftLength = 8 * time.Hour

// nightShiftEndHour: third-shift starts before this hour belong to the
// previous display date (the operator is logging the tail of the shift).
const nightShiftEndHour = 6

var nominalStartHour = map[Shift]int{
	ShiftFirst:  6,
	ShiftSecond: 14,
	ShiftThird:  22,
}

func Parse(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftFirst, ShiftSecond, ShiftThird:
		return Shift(s), nil
	}
	return "", fmt.Errorf("неизвестная смена: %q", s)
}

// NominalStartHour returns the shift's official start clock-hour (0–23).
func NominalStartHour(s Shift) int {
	return nominalStartHour[s]
}

// NominalStartOn composes the shift's nominal start instant for a display
// date. For the third shift that instant is 22:00 of the display date itself,
// even though part of the shift runs on the following calendar day.
func NominalStartOn(s Shift, displayDate time.Time) time.Time {
	y, m, d := displayDate.Date()
	return time.Date(y, m, d, nominalStartHour[s], 0, 0, 0, time.UTC)
}

// WindowOn returns the shift's allowed [start, end] window for a display date.
func WindowOn(s Shift, displayDate time.Time) (time.Time, time.Time) {
	start := NominalStartOn(s, displayDate)
	return start, start.Add(ShiftLength)
}

// ResolveDisplayDate returns the calendar date an entry is reported under.
// The first and second shift always display under the start's own date.
// A third-shift start in the early-morning continuation (before 06:00)
// displays under the previous date: the shift began at 22:00 the day before.
func ResolveDisplayDate(s Shift, start time.Time) time.Time {
	d := DateOf(start)
	if IsNightTail(s, start.Hour()) {
		return d.AddDate(0, 0, -1)
	}
	return d
}

// IsNightTail reports whether a clock-hour is the early-morning continuation
// of the night shift.
func IsNightTail(s Shift, hour int) bool {
	return s == ShiftThird && hour < nightShiftEndHour
}

// DateOf truncates an instant to its calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
