package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

// In-memory implementations backing tests and the CLI's demo mode. They
// mirror the Postgres repositories' observable behavior, including the
// name-uniqueness rule.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.store {
		if h.Name == habit.Name {
			return domain.ErrHabitNameTaken
		}
	}

	copied := *habit
	r.store[habit.ID] = &copied
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	copied := *habit
	return &copied, nil
}

func (r *InMemoryHabitRepository) GetByName(ctx context.Context, name string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.store {
		if h.Name == name {
			copied := *h
			return &copied, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (r *InMemoryHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.store))
	for _, h := range r.store {
		copied := *h
		habits = append(habits, &copied)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].Name < habits[j].Name
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) ListByPeriodicity(ctx context.Context, p domain.Periodicity) ([]*domain.Habit, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	habits := make([]*domain.Habit, 0, len(all))
	for _, h := range all {
		if h.Periodicity == p {
			habits = append(habits, h)
		}
	}
	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	copied := *habit
	r.store[habit.ID] = &copied
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}

	habit.UpdateStreak(current, longest)
	return nil
}

type InMemoryCompletionRepository struct {
	store map[string][]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string][]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *completion
	r.store[completion.HabitID] = append(r.store[completion.HabitID], &copied)
	return nil
}

func (r *InMemoryCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	completions := make([]*domain.Completion, 0, len(r.store[habitID]))
	for _, c := range r.store[habitID] {
		copied := *c
		completions = append(completions, &copied)
	}
	return completions, nil
}

func (r *InMemoryCompletionRepository) ExistsOnDate(ctx context.Context, habitID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := domain.DateOnly(date)
	for _, c := range r.store[habitID] {
		if c.Date.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, habitID)
	return nil
}
