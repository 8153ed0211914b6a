package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical stored and submitted date format.
const DateLayout = "2006-01-02"

var (
	ErrInvalidTime = errors.New("time must look like 9:30 AM")
	ErrInvalidDate = errors.New("date must look like 2024-03-15")
)

// ClockTime is a time of day with minute resolution, stored as minutes since midnight.
type ClockTime int

// ParseClockTime parses a 12-hour clock time ("9:05 AM", "09:05pm") or a
// 24-hour "HH:MM" as produced by HTML time inputs. The AM/PM marker is case
// insensitive. A 12-hour value must have hour 1-12.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidTime
	}

	marker := ""
	if strings.HasSuffix(s, "AM") || strings.HasSuffix(s, "PM") {
		marker = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, ErrInvalidTime
	}
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	if minute > 59 {
		return 0, ErrInvalidTime
	}

	switch marker {
	case "":
		if hour > 23 {
			return 0, ErrInvalidTime
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, ErrInvalidTime
		}
		hour %= 12
		if marker == "PM" {
			hour += 12
		}
	}
	return ClockTime(hour*60 + minute), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParseClockTime is ParseClockTime for literals; it panics on error.
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(fmt.Sprintf("session: bad clock time %q", s))
	}
	return c
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return int(c)
}

// String formats the time as "hh:mm AM".
func (c ClockTime) String() string {
	hour, minute := int(c)/60, int(c)%60
	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, marker)
}

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Long formats the date for certificates, e.g. "March 15, 2024".
func (d Date) Long() string {
	return d.Time().Format("January 2, 2006")
}
