package entity

import "time"

const (
	MinGuesses = 1
	// MaxGuesses doubles as the "did not solve" marker.
	MaxGuesses = 7
)

// DateLayout is the calendar-day format used for score dates.
const DateLayout = "2006-01-02"

// DailyScore is one user's result for one UTC calendar day.
type DailyScore struct {
	ID          string
	UserID      string
	Date        time.Time // midnight UTC
	Guesses     int
	RawResult   string
	SubmittedAt time.Time
}

// Failed reports whether the score records an unsolved puzzle.
func (s DailyScore) Failed() bool { return s.Guesses == MaxGuesses }

// DayOf truncates t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
