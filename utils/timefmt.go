package utils

import (
	"fmt"
	"time"
)

// Wire formats for booking dates and slot times. Slots are local to the
// restaurant's timezone; the caller supplies already-normalized values.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// CombineDateClock builds the instant a slot boundary refers to, in the
// given location.
func CombineDateClock(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM:SS", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}
