package analysis_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habit-analysis-engine/internal/core/analysis"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

func TestAnalyzeStreaks_Daily(t *testing.T) {
	created := date(2024, time.January, 1)

	t.Run("Two consecutive days, no breaks", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 2),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 2))
		require.NoError(t, err)

		assert.Equal(t, 2, res.CurrentStreak)
		assert.Equal(t, 2, res.LongestStreak)
		assert.Empty(t, res.Breaks)
	})

	t.Run("Gap of three days becomes one break", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 5),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 5))
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentStreak)
		assert.Equal(t, 1, res.LongestStreak)

		require.Len(t, res.Breaks, 1)
		br := res.Breaks[0]
		assert.Equal(t, date(2024, time.January, 2), br.Start)
		assert.Equal(t, date(2024, time.January, 5), br.End)
		assert.Equal(t, 3, br.GapDays())
		assert.Equal(t, 3, br.Periods())
	})

	t.Run("Open current period does not break the streak", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 2),
			date(2024, time.January, 3),
		})

		// As-of Jan 4: today is not checked off yet, streak survives.
		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 4))
		require.NoError(t, err)

		assert.Equal(t, 3, res.CurrentStreak)
		assert.Equal(t, 3, res.LongestStreak)
		assert.Empty(t, res.Breaks)
	})

	t.Run("Two missed days kill the current streak", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 2),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 5))
		require.NoError(t, err)

		assert.Equal(t, 0, res.CurrentStreak)
		assert.Equal(t, 2, res.LongestStreak)

		// Jan 3 and Jan 4 are missed; Jan 5 is still open.
		require.Len(t, res.Breaks, 1)
		assert.Equal(t, date(2024, time.January, 3), res.Breaks[0].Start)
		assert.Equal(t, date(2024, time.January, 5), res.Breaks[0].End)
	})

	t.Run("Longest streak in the past", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 1),
			date(2024, time.January, 2),
			date(2024, time.January, 3),
			date(2024, time.January, 10),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 10))
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentStreak)
		assert.Equal(t, 3, res.LongestStreak)
		require.Len(t, res.Breaks, 1)
		assert.Equal(t, 6, res.Breaks[0].GapDays())
	})

	t.Run("Zero completions: single break over the whole lifetime", func(t *testing.T) {
		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, nil, date(2024, time.January, 10))
		require.NoError(t, err)

		assert.Equal(t, 0, res.CurrentStreak)
		assert.Equal(t, 0, res.LongestStreak)

		require.Len(t, res.Breaks, 1)
		assert.Equal(t, date(2024, time.January, 1), res.Breaks[0].Start)
		assert.Equal(t, date(2024, time.January, 11), res.Breaks[0].End)
		assert.Equal(t, 10, res.Breaks[0].GapDays())
	})

	t.Run("Single completion in the current period", func(t *testing.T) {
		dates := []time.Time{date(2024, time.January, 1)}

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 1))
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentStreak)
		assert.Equal(t, 1, res.LongestStreak)
		assert.Empty(t, res.Breaks)
	})

	t.Run("As-of equals creation date is a valid state", func(t *testing.T) {
		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, nil, created)
		require.NoError(t, err)

		assert.Equal(t, 0, res.CurrentStreak)
		require.Len(t, res.Breaks, 1)
		assert.Equal(t, 1, res.Breaks[0].GapDays())
	})

	t.Run("Error: Completion before creation", func(t *testing.T) {
		dates := []time.Time{date(2023, time.December, 31)}

		_, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, dates, date(2024, time.January, 5))
		assert.ErrorIs(t, err, domain.ErrCheckoffBeforeCreation)
	})

	t.Run("Error: Unknown periodicity", func(t *testing.T) {
		_, err := analysis.AnalyzeStreaks(domain.Periodicity("fortnightly"), created, nil, created)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodicity)
	})
}

func TestAnalyzeStreaks_Weekly(t *testing.T) {
	created := date(2024, time.January, 3)

	t.Run("Never completed: break spans the whole range", func(t *testing.T) {
		asOf := date(2024, time.February, 1)

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityWeekly, created, nil, asOf)
		require.NoError(t, err)

		assert.Equal(t, 0, res.CurrentStreak)
		assert.Equal(t, 0, res.LongestStreak)

		require.Len(t, res.Breaks, 1)
		br := res.Breaks[0]
		assert.Equal(t, created, br.Start)
		// Feb 1 falls in week 4 (Jan 31 - Feb 7), so the break runs
		// through the end of that week.
		assert.Equal(t, date(2024, time.February, 7), br.End)
		assert.Equal(t, 35, br.GapDays())

		struggle := analysis.Struggle("h1", "Gym", res)
		assert.Equal(t, 36, struggle.Score)
	})

	t.Run("Mid-week creation: completions six days apart share a period", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 3),
			date(2024, time.January, 8),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityWeekly, created, dates, date(2024, time.January, 9))
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentStreak)
		assert.Equal(t, 1, res.LongestStreak)
		assert.Empty(t, res.Breaks)
	})

	t.Run("Consecutive weeks accumulate", func(t *testing.T) {
		dates := domain.NormalizeDates([]time.Time{
			date(2024, time.January, 4),
			date(2024, time.January, 11),
			date(2024, time.January, 18),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityWeekly, created, dates, date(2024, time.January, 20))
		require.NoError(t, err)

		assert.Equal(t, 3, res.CurrentStreak)
		assert.Equal(t, 3, res.LongestStreak)
		assert.Empty(t, res.Breaks)
	})
}

func TestAnalyzeStreaks_Monthly(t *testing.T) {
	t.Run("Skipped February is one break worth its day count", func(t *testing.T) {
		created := date(2023, time.December, 10)
		dates := domain.NormalizeDates([]time.Time{
			date(2023, time.December, 15),
			date(2024, time.January, 20),
			date(2024, time.March, 5),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityMonthly, created, dates, date(2024, time.March, 20))
		require.NoError(t, err)

		assert.Equal(t, 1, res.CurrentStreak)
		assert.Equal(t, 2, res.LongestStreak)

		require.Len(t, res.Breaks, 1)
		br := res.Breaks[0]
		assert.Equal(t, date(2024, time.February, 1), br.Start)
		assert.Equal(t, date(2024, time.March, 1), br.End)
		assert.Equal(t, 29, br.GapDays(), "February 2024 is a leap February")
		assert.Equal(t, 1, br.Periods())
	})

	t.Run("Skipped February in a common year is 28 gap days", func(t *testing.T) {
		created := date(2022, time.December, 10)
		dates := domain.NormalizeDates([]time.Time{
			date(2022, time.December, 15),
			date(2023, time.January, 20),
			date(2023, time.March, 5),
		})

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityMonthly, created, dates, date(2023, time.March, 20))
		require.NoError(t, err)

		require.Len(t, res.Breaks, 1)
		assert.Equal(t, 28, res.Breaks[0].GapDays())
	})
}

func TestAnalyzeStreaks_InputHygiene(t *testing.T) {
	created := date(2024, time.January, 1)
	asOf := date(2024, time.January, 20)

	base := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 10),
		date(2024, time.January, 11),
	}

	reference, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, domain.NormalizeDates(base), asOf)
	require.NoError(t, err)

	t.Run("Duplicates are idempotent", func(t *testing.T) {
		withDupes := append([]time.Time{}, base...)
		withDupes = append(withDupes, date(2024, time.January, 2), date(2024, time.January, 10))

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, domain.NormalizeDates(withDupes), asOf)
		require.NoError(t, err)
		assert.Equal(t, reference, res)
	})

	t.Run("Order independence", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			shuffled := append([]time.Time{}, base...)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})

			res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, domain.NormalizeDates(shuffled), asOf)
			require.NoError(t, err)
			assert.Equal(t, reference, res)
		}
	})

	t.Run("Completions after the as-of date are outside the snapshot", func(t *testing.T) {
		withFuture := append([]time.Time{}, base...)
		withFuture = append(withFuture, date(2024, time.February, 15))

		res, err := analysis.AnalyzeStreaks(domain.PeriodicityDaily, created, domain.NormalizeDates(withFuture), asOf)
		require.NoError(t, err)
		assert.Equal(t, reference, res)
	})
}
