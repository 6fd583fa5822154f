package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitNameTaken     = errors.New("a habit with this name already exists")
	ErrCompletionNotFound = errors.New("completion not found")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// GetByName retrieves a habit by its unique name.
	GetByName(ctx context.Context, name string) (*Habit, error)

	// List retrieves all tracked habits.
	List(ctx context.Context) ([]*Habit, error)

	// ListByPeriodicity retrieves all habits sharing a periodicity.
	ListByPeriodicity(ctx context.Context, p Periodicity) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes a habit and, via cascade, its completions.
	Delete(ctx context.Context, id string) error

	// UpdateStreaks writes the denormalized streak counters.
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	// Create persists a single checkoff event.
	Create(ctx context.Context, completion *Completion) error

	// ListByHabitID retrieves every completion for a habit, unordered.
	// Callers normalize before analysis.
	ListByHabitID(ctx context.Context, habitID string) ([]*Completion, error)

	// ExistsOnDate reports whether the habit already has a completion on
	// the given calendar date.
	ExistsOnDate(ctx context.Context, habitID string, date time.Time) (bool, error)

	// DeleteByHabitID removes all completions belonging to a habit.
	DeleteByHabitID(ctx context.Context, habitID string) error
}
