package services

import (
	"context"
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/analysis"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

// AnalysisService feeds snapshots from the repositories into the pure
// analysis engine. The as-of date is always supplied by the caller so
// results stay reproducible; nothing here reads a clock.
type AnalysisService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
}

func NewAnalysisService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository) *AnalysisService {
	return &AnalysisService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
	}
}

func (s *AnalysisService) snapshot(ctx context.Context, habit *domain.Habit) ([]time.Time, error) {
	completions, err := s.completionRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeDates(domain.CompletionDates(completions)), nil
}

func (s *AnalysisService) GetStreaks(ctx context.Context, habitID string, asOf time.Time) (analysis.StreakResult, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return analysis.StreakResult{}, err
	}

	dates, err := s.snapshot(ctx, habit)
	if err != nil {
		return analysis.StreakResult{}, err
	}

	return analysis.AnalyzeStreaks(habit.Periodicity, habit.CreationDate(), dates, asOf)
}

func (s *AnalysisService) GetStruggle(ctx context.Context, habitID string, asOf time.Time) (analysis.StruggleResult, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return analysis.StruggleResult{}, err
	}

	dates, err := s.snapshot(ctx, habit)
	if err != nil {
		return analysis.StruggleResult{}, err
	}

	streaks, err := analysis.AnalyzeStreaks(habit.Periodicity, habit.CreationDate(), dates, asOf)
	if err != nil {
		return analysis.StruggleResult{}, err
	}

	return analysis.Struggle(habit.ID, habit.Name, streaks), nil
}

func (s *AnalysisService) collectOutcomes(ctx context.Context, asOf time.Time) ([]analysis.HabitOutcome, error) {
	habits, err := s.habitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]analysis.HabitOutcome, 0, len(habits))
	for _, habit := range habits {
		dates, err := s.snapshot(ctx, habit)
		if err != nil {
			return nil, err
		}

		streaks, err := analysis.AnalyzeStreaks(habit.Periodicity, habit.CreationDate(), dates, asOf)
		if err != nil {
			return nil, err
		}

		outcomes = append(outcomes, analysis.HabitOutcome{
			HabitID:     habit.ID,
			Name:        habit.Name,
			Periodicity: habit.Periodicity,
			Streaks:     streaks,
			Struggle:    analysis.Struggle(habit.ID, habit.Name, streaks),
		})
	}

	return outcomes, nil
}

// RankStruggles scores every tracked habit and returns them worst-first.
func (s *AnalysisService) RankStruggles(ctx context.Context, asOf time.Time) ([]analysis.StruggleResult, error) {
	outcomes, err := s.collectOutcomes(ctx, asOf)
	if err != nil {
		return nil, err
	}

	results := make([]analysis.StruggleResult, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, o.Struggle)
	}

	return analysis.Rank(results), nil
}

func (s *AnalysisService) GetSummary(ctx context.Context, asOf time.Time) (analysis.SummaryReport, error) {
	outcomes, err := s.collectOutcomes(ctx, asOf)
	if err != nil {
		return analysis.SummaryReport{}, err
	}

	return analysis.Summarize(outcomes), nil
}

// LongestStreak reports the single best run across all habits, measured
// in periods. An empty name means no habits are tracked.
func (s *AnalysisService) LongestStreak(ctx context.Context, asOf time.Time) (string, int, error) {
	outcomes, err := s.collectOutcomes(ctx, asOf)
	if err != nil {
		return "", 0, err
	}

	bestName := ""
	bestLen := 0
	for _, o := range outcomes {
		if o.Streaks.LongestStreak > bestLen || (o.Streaks.LongestStreak == bestLen && bestName != "" && o.Name < bestName) {
			bestName = o.Name
			bestLen = o.Streaks.LongestStreak
		}
	}

	if bestName == "" && len(outcomes) > 0 {
		bestName = outcomes[0].Name
	}

	return bestName, bestLen, nil
}
