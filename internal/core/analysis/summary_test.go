package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habit-analysis-engine/internal/core/analysis"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

func outcome(id, name string, p domain.Periodicity, current, score int) analysis.HabitOutcome {
	return analysis.HabitOutcome{
		HabitID:     id,
		Name:        name,
		Periodicity: p,
		Streaks:     analysis.StreakResult{CurrentStreak: current},
		Struggle:    analysis.StruggleResult{HabitID: id, Name: name, Score: score},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("Groups by periodicity and picks best and worst", func(t *testing.T) {
		outcomes := []analysis.HabitOutcome{
			outcome("h1", "Meditation", domain.PeriodicityDaily, 4, 0),
			outcome("h2", "Workout", domain.PeriodicityDaily, 0, 63),
			outcome("h3", "Groceries", domain.PeriodicityWeekly, 1, 8),
			outcome("h4", "Budget Review", domain.PeriodicityMonthly, 0, 36),
		}

		report := analysis.Summarize(outcomes)

		assert.Equal(t, 4, report.TotalHabits)
		assert.Equal(t, analysis.PeriodicityCount{Completed: 1, Total: 2}, report.ByPeriodicity[domain.PeriodicityDaily])
		assert.Equal(t, analysis.PeriodicityCount{Completed: 1, Total: 1}, report.ByPeriodicity[domain.PeriodicityWeekly])
		assert.Equal(t, analysis.PeriodicityCount{Completed: 0, Total: 1}, report.ByPeriodicity[domain.PeriodicityMonthly])

		assert.Equal(t, "h1", report.BestHabitID)
		assert.Equal(t, "Meditation", report.BestHabitName)
		assert.Equal(t, "h2", report.MostStruggledHabitID)
		assert.Equal(t, "Workout", report.MostStruggledHabitName)
	})

	t.Run("Score ties broken by current streak, then name", func(t *testing.T) {
		outcomes := []analysis.HabitOutcome{
			outcome("h1", "Beta", domain.PeriodicityDaily, 2, 5),
			outcome("h2", "Alpha", domain.PeriodicityDaily, 2, 5),
			outcome("h3", "Gamma", domain.PeriodicityDaily, 7, 5),
		}

		report := analysis.Summarize(outcomes)

		// Best: equal scores, h3 has the longest current streak.
		assert.Equal(t, "h3", report.BestHabitID)
		// Worst: equal scores and equal (lowest) streaks, name ascending wins.
		assert.Equal(t, "h2", report.MostStruggledHabitID)
	})

	t.Run("Empty input yields an empty but complete report", func(t *testing.T) {
		report := analysis.Summarize(nil)

		assert.Equal(t, 0, report.TotalHabits)
		require.Contains(t, report.ByPeriodicity, domain.PeriodicityDaily)
		require.Contains(t, report.ByPeriodicity, domain.PeriodicityWeekly)
		require.Contains(t, report.ByPeriodicity, domain.PeriodicityMonthly)
		assert.Empty(t, report.BestHabitID)
		assert.Empty(t, report.MostStruggledHabitID)
	})

	t.Run("Single habit is both best and most struggled", func(t *testing.T) {
		report := analysis.Summarize([]analysis.HabitOutcome{
			outcome("h1", "Guitar", domain.PeriodicityDaily, 0, 36),
		})

		assert.Equal(t, "h1", report.BestHabitID)
		assert.Equal(t, "h1", report.MostStruggledHabitID)
	})
}
