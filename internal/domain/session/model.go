package session

import (
	"errors"
	"math"
	"time"
)

// Domain errors
var (
	ErrMissingVolunteer = errors.New("session must be associated with a volunteer")
	ErrMissingDate      = errors.New("session date must be set")
)

// minutesPerDay is added to an end time that falls before its start time.
const minutesPerDay = 24 * 60

// OpenSession is a sign-in awaiting its sign-out.
type OpenSession struct {
	ID          int64
	VolunteerID int64
	Date        Date
	StartTime   ClockTime
}

// Validate checks if the OpenSession has valid data.
// PRE: OpenSession struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *OpenSession) Validate() error {
	if s.VolunteerID <= 0 {
		return ErrMissingVolunteer
	}
	if s.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Close produces the closed session that replaces this open one.
// PRE: end is a parsed clock time
// POST: Returns a ClosedSession with the same volunteer, date and start; ID is unset
func (s *OpenSession) Close(end ClockTime) ClosedSession {
	return ClosedSession{
		VolunteerID: s.VolunteerID,
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     end,
	}
}

// ClosedSession is a completed work interval.
type ClosedSession struct {
	ID          int64
	VolunteerID int64
	Date        Date
	StartTime   ClockTime
	EndTime     ClockTime
}

// Validate checks if the ClosedSession has valid data.
// PRE: ClosedSession struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *ClosedSession) Validate() error {
	if s.VolunteerID <= 0 {
		return ErrMissingVolunteer
	}
	if s.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Duration returns the worked interval.
// An end time earlier than the start time is read as crossing midnight.
// Equal start and end yield zero.
func (s *ClosedSession) Duration() time.Duration {
	return time.Duration(s.minutes()) * time.Minute
}

// Hours returns the worked interval in fractional hours.
func (s *ClosedSession) Hours() float64 {
	return float64(s.minutes()) / 60
}

func (s *ClosedSession) minutes() int {
	start, end := s.StartTime.Minutes(), s.EndTime.Minutes()
	if end < start {
		end += minutesPerDay
	}
	return end - start
}

// TotalHours sums the durations of the given sessions and rounds the result
// to two decimal places (math.Round, half away from zero).
// PRE: none
// POST: Returns 0 for an empty slice
func TotalHours(sessions []ClosedSession) float64 {
	var total int
	for i := range sessions {
		total += sessions[i].minutes()
	}
	return RoundHours(float64(total) / 60)
}

// RoundHours rounds h to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
