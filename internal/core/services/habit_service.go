package services

import (
	"context"
	"errors"
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
	"github.com/habitloop/habit-analysis-engine/internal/core/workers"
)

type HabitService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	worker         *workers.StreakWorker
}

func NewHabitService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, worker *workers.StreakWorker) *HabitService {
	return &HabitService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		worker:         worker,
	}
}

type CreateHabitInput struct {
	Name        string
	Description string
	Periodicity string
}

type UpdateHabitInput struct {
	ID          string
	Name        string
	Description string
	Periodicity string
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	periodicity, err := domain.ParsePeriodicity(input.Periodicity)
	if err != nil {
		return nil, err
	}

	habit, err := domain.NewHabit(input.Name, input.Description, periodicity)
	if err != nil {
		return nil, err
	}

	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return s.habitRepo.GetByID(ctx, id)
}

// Find resolves a habit by id first, then by name, mirroring how users
// refer to habits interactively.
func (s *HabitService) Find(ctx context.Context, identifier string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, identifier)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, domain.ErrHabitNotFound) {
		return nil, err
	}

	return s.habitRepo.GetByName(ctx, identifier)
}

func (s *HabitService) List(ctx context.Context) ([]*domain.Habit, error) {
	return s.habitRepo.List(ctx)
}

func (s *HabitService) ListByPeriodicity(ctx context.Context, periodicity string) ([]*domain.Habit, error) {
	p, err := domain.ParsePeriodicity(periodicity)
	if err != nil {
		return nil, err
	}

	return s.habitRepo.ListByPeriodicity(ctx, p)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Periodicity is frozen at creation; a different value here is a
	// client mistake, not a merge.
	if input.Periodicity != "" && input.Periodicity != habit.Periodicity.String() {
		return nil, domain.ErrPeriodicityImmutable
	}

	name := input.Name
	if name == "" {
		name = habit.Name
	}
	desc := input.Description
	if desc == "" {
		desc = habit.Description
	}

	if err := habit.Update(name, desc); err != nil {
		return nil, err
	}

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string) error {
	if _, err := s.habitRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.completionRepo.DeleteByHabitID(ctx, id); err != nil {
		return err
	}

	return s.habitRepo.Delete(ctx, id)
}

// Checkoff records a completion for the habit on the given calendar date
// (zero time means today). Checking off twice in one day is a no-op, not
// an error; the returned bool reports whether a new completion was stored.
func (s *HabitService) Checkoff(ctx context.Context, identifier string, date time.Time) (*domain.Completion, bool, error) {
	habit, err := s.Find(ctx, identifier)
	if err != nil {
		return nil, false, err
	}

	if date.IsZero() {
		date = time.Now().UTC()
	}
	day := domain.DateOnly(date)

	if day.Before(habit.CreationDate()) {
		return nil, false, domain.ErrCheckoffBeforeCreation
	}

	exists, err := s.completionRepo.ExistsOnDate(ctx, habit.ID, day)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	completion, err := domain.NewCompletion(habit.ID, day)
	if err != nil {
		return nil, false, err
	}

	if err := s.completionRepo.Create(ctx, completion); err != nil {
		return nil, false, err
	}

	if s.worker != nil {
		s.worker.Enqueue(habit.ID)
	}

	return completion, true, nil
}
