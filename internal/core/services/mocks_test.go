package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	args := m.Called(ctx, habit)
	return args.Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*domain.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHabitRepo) GetByName(ctx context.Context, name string) (*domain.Habit, error) {
	args := m.Called(ctx, name)
	if h, ok := args.Get(0).(*domain.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHabitRepo) List(ctx context.Context) ([]*domain.Habit, error) {
	args := m.Called(ctx)
	if habits, ok := args.Get(0).([]*domain.Habit); ok {
		return habits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHabitRepo) ListByPeriodicity(ctx context.Context, p domain.Periodicity) ([]*domain.Habit, error) {
	args := m.Called(ctx, p)
	if habits, ok := args.Get(0).([]*domain.Habit); ok {
		return habits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	args := m.Called(ctx, habit)
	return args.Error(0)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHabitRepo) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	args := m.Called(ctx, id, current, longest)
	return args.Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Create(ctx context.Context, completion *domain.Completion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockCompletionRepo) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	args := m.Called(ctx, habitID)
	if completions, ok := args.Get(0).([]*domain.Completion); ok {
		return completions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompletionRepo) ExistsOnDate(ctx context.Context, habitID string, date time.Time) (bool, error) {
	args := m.Called(ctx, habitID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompletionRepo) DeleteByHabitID(ctx context.Context, habitID string) error {
	args := m.Called(ctx, habitID)
	return args.Error(0)
}
