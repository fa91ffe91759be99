// Package dateutil provides whole-day date values, parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

const (
	layout     = "2006-01-02"
	secondsDay = 24 * 60 * 60
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Date is a calendar day in UTC, stored as the number of days since 1970-01-01.
// Dates are values: arithmetic returns a new Date and comparisons are integer comparisons.
type Date int32

// NewDate returns the date for the given calendar components.
// Out-of-range months and days are normalized like time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date(t.Unix() / secondsDay)
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar date.
func Today() Date {
	return FromTime(time.Now())
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secondsDay, 0).UTC()
}

// Components returns the year, month and day of the date.
func (d Date) Components() (year int, month time.Month, day int) {
	return d.Time().Date()
}

// Year returns the year component.
func (d Date) Year() int {
	return d.Time().Year()
}

// Month returns the 1-based month component.
func (d Date) Month() time.Month {
	return d.Time().Month()
}

// Day returns the day-of-month component.
func (d Date) Day() int {
	return d.Time().Day()
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return d + Date(n)
}

// Sub returns the signed number of days from other to d.
func (d Date) Sub(other Date) int {
	return int(d - other)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is later than other.
func (d Date) After(other Date) bool { return d > other }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d == other }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d < other:
		return -1
	case d > other:
		return 1
	default:
		return 0
	}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(layout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse(layout, string(b))
	if err != nil {
		return ErrInvalidDateFormat
	}
	*d = FromTime(t)
	return nil
}

// Min returns the earlier of two dates.
func Min(a, b Date) Date {
	if a < b {
		return a
	}
	return b
}

// Max returns the later of two dates.
func Max(a, b Date) Date {
	if a > b {
		return a
	}
	return b
}

// DateRange represents a validated inclusive date range.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns the number of days in the range, counting both ends.
func (r DateRange) Days() int {
	return r.End.Sub(r.Start) + 1
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	return FromTime(t), nil
}

// MustParse parses a YYYY-MM-DD date and panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	t, err := time.Parse(layout, s)
	if err != nil {
		panic(err)
	}
	return FromTime(t)
}

// WeekStart returns the first day of the week containing d, where weeks begin on first.
func WeekStart(d Date, first time.Weekday) Date {
	offset := (int(d.Weekday()) - int(first) + 7) % 7
	return d.AddDays(-offset)
}

// ParseWeekday parses a weekday name, case-insensitive.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//   - "last-week": same weekday, 7 days earlier
//
// All inputs are case-insensitive. Past dates are accepted.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (Date, error) {
	today := FromTime(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "next-week":
		return today.AddDays(7), nil
	case "last-week":
		return today.AddDays(-7), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return nextWeekday(today, target), nil
		}
		return 0, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	t, err := time.Parse(layout, input)
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	return FromTime(t), nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today Date, target time.Weekday) Date {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDays(daysUntil)
}
