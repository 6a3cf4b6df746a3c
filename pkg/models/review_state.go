package models

import "time"

// DateLayout is the on-disk format of calendar dates
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// MaxDate is the last day DateLayout can represent
var MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ReviewState tracks the SM-2 scheduling state of a single card
type ReviewState struct {
	Iteration    uint32    `json:"iteration"`     // Consecutive successful reviews
	Ease         float64   `json:"ease"`          // SM-2 easiness factor, never below 1.3
	LastReviewed time.Time `json:"last_reviewed"` // Date of the most recent rating
	NextDue      time.Time `json:"next_due"`      // Date on which the card becomes due again
}

// IsDue reports whether the card should be reviewed on the given day
func (s ReviewState) IsDue(today time.Time) bool {
	return !s.NextDue.After(Date(today))
}

// Interval returns the number of days between the last review and the due date
func (s ReviewState) Interval() int {
	return DaysBetween(s.LastReviewed, s.NextDue)
}

// Date truncates t to the calendar day it falls on, expressed as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day
func Today() time.Time {
	return Date(time.Now())
}

// AddDays moves a date n calendar days forward
func AddDays(day time.Time, n int) time.Time {
	return Date(day).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from one date to another.
// The result is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int((Date(to).Unix() - Date(from).Unix()) / secondsPerDay)
}
