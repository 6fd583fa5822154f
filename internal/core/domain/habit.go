package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty       = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong     = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong     = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidPeriodicity   = errors.New("invalid periodicity (must be daily, weekly, or monthly)")
	ErrPeriodicityImmutable = errors.New("periodicity cannot be changed after creation")
)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

// Periodicity is a closed set of recognized habit frequencies. Anything
// else is rejected at construction time, never coerced later.
type Periodicity string

const (
	PeriodicityDaily   Periodicity = "daily"
	PeriodicityWeekly  Periodicity = "weekly"
	PeriodicityMonthly Periodicity = "monthly"
)

func ParsePeriodicity(s string) (Periodicity, error) {
	switch Periodicity(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodicityDaily:
		return PeriodicityDaily, nil
	case PeriodicityWeekly:
		return PeriodicityWeekly, nil
	case PeriodicityMonthly:
		return PeriodicityMonthly, nil
	default:
		return "", ErrInvalidPeriodicity
	}
}

func (p Periodicity) Valid() bool {
	switch p {
	case PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly:
		return true
	}
	return false
}

func (p Periodicity) String() string {
	return string(p)
}

// Periodicities lists the recognized values in display order.
func Periodicities() []Periodicity {
	return []Periodicity{PeriodicityDaily, PeriodicityWeekly, PeriodicityMonthly}
}

type Habit struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description,omitempty" db:"description"`
	Periodicity Periodicity `json:"periodicity" db:"periodicity"`

	// Denormalized streak counters maintained by the streak worker.
	// The analysis endpoints always recompute from completions; these
	// exist so habit listings stay cheap.
	CurrentStreak int `json:"current_streak" db:"current_streak"`
	LongestStreak int `json:"longest_streak" db:"longest_streak"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func validateNameDesc(name, desc string) (string, string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", "", ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return "", "", ErrHabitNameTooLong
	}

	cleanDesc := strings.TrimSpace(desc)
	if len(cleanDesc) > MaxDescLen {
		return "", "", ErrHabitDescTooLong
	}

	return trimmed, cleanDesc, nil
}

func NewHabit(name, description string, periodicity Periodicity) (*Habit, error) {
	cleanName, cleanDesc, err := validateNameDesc(name, description)
	if err != nil {
		return nil, err
	}

	if !periodicity.Valid() {
		return nil, ErrInvalidPeriodicity
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		Name:        cleanName,
		Description: cleanDesc,
		Periodicity: periodicity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update renames or re-describes the habit. Periodicity is deliberately
// not an argument: changing it would invalidate every period boundary
// derived from the creation date.
func (h *Habit) Update(name, description string) error {
	cleanName, cleanDesc, err := validateNameDesc(name, description)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Description = cleanDesc
	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}

// CreationDate is the habit's creation day truncated to midnight UTC,
// the anchor for all period arithmetic.
func (h *Habit) CreationDate() time.Time {
	return DateOnly(h.CreatedAt)
}
