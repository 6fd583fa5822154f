package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCheckoffBeforeCreation = errors.New("completion date precedes habit creation date")
	ErrCompletionHabitMissing = errors.New("completion requires a habit id")
)

// Completion records that a habit was checked off on a calendar date.
// The time of day is irrelevant to analysis; Date is always stored at
// midnight UTC.
type Completion struct {
	ID      string    `json:"id" db:"id"`
	HabitID string    `json:"habit_id" db:"habit_id"`
	Date    time.Time `json:"date" db:"date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewCompletion(habitID string, date time.Time) (*Completion, error) {
	if habitID == "" {
		return nil, ErrCompletionHabitMissing
	}

	return &Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      DateOnly(date),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DateOnly drops the time-of-day component, yielding midnight UTC of the
// same calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDates collapses a raw completion history to the distinct set of
// calendar dates, sorted ascending. The analysis engine documents this as
// a precondition instead of silently fixing bad input, so every caller
// funnels through here first.
func NormalizeDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := DateOnly(d)
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})

	return out
}

// CompletionDates projects completions onto their calendar dates.
func CompletionDates(completions []*Completion) []time.Time {
	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return dates
}
