package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Meal timestamps arrive as a "dd/mm/yyyy" date and a "hh:mm" time.
const mealDateTimeLayout = "02/01/2006 15:04"

// Go parses the "15" hour element with one or two digits.
const (
	mealDateLen  = len("02/01/2006")
	mealClockLen = len("15:04")
)

var ErrInvalidDateTime = errors.New("invalid date or time")

// ParseMealDateTime combines a dd/mm/yyyy date and hh:mm time into one instant in loc.
func ParseMealDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("%w: date and time are both required", ErrInvalidDateTime)
	}
	t, err := time.ParseInLocation(mealDateTimeLayout, date+" "+clock, loc)
	if err != nil || len(date) != mealDateLen || len(clock) != mealClockLen {
		return time.Time{}, fmt.Errorf("%w: expected dd/mm/yyyy and hh:mm, got %q %q", ErrInvalidDateTime, date, clock)
	}
	return t, nil
}
