package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

type fixture struct {
	name        string
	description string
	periodicity domain.Periodicity
	completions []time.Time
}

// demoFixtures builds the predefined example data set: four-plus weeks of
// history across all three periodicities, including streaky, spotty and
// never-touched habits so every analysis path has something to show.
// Daily habits are relative to "now"; weekly and monthly ones use
// day-of-previous-month dates so the period math stays interesting
// regardless of when the demo is seeded.
func demoFixtures(now time.Time) []fixture {
	today := domain.DateOnly(now)
	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	monthsAgo := func(m, day int) time.Time {
		d := today.AddDate(0, -m, 0)
		return time.Date(d.Year(), d.Month(), day, 0, 0, 0, 0, time.UTC)
	}

	return []fixture{
		{
			name:        "Daily Meditation",
			description: "10 minutes of mindfulness.",
			periodicity: domain.PeriodicityDaily,
			completions: []time.Time{daysAgo(2), daysAgo(1), today},
		},
		{
			name:        "Workout",
			description: "At least 30 minutes of exercise.",
			periodicity: domain.PeriodicityDaily,
			completions: []time.Time{daysAgo(40), daysAgo(20)},
		},
		{
			name:        "Read a Book",
			description: "Read at least one chapter.",
			periodicity: domain.PeriodicityDaily,
			completions: []time.Time{daysAgo(2)},
		},
		{
			name:        "Practice Guitar",
			description: "A new habit with no completions yet.",
			periodicity: domain.PeriodicityDaily,
		},
		{
			name:        "Morning Journal",
			description: "Write one page of thoughts.",
			periodicity: domain.PeriodicityDaily,
			completions: []time.Time{
				daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4),
				daysAgo(5), daysAgo(6), daysAgo(7), daysAgo(8), daysAgo(9),
			},
		},
		{
			name:        "Code for 30 Minutes",
			description: "Work on a personal project.",
			periodicity: domain.PeriodicityDaily,
			completions: []time.Time{
				daysAgo(1), daysAgo(3), daysAgo(5), daysAgo(7),
				daysAgo(9), daysAgo(11), daysAgo(13),
			},
		},
		{
			name:        "Weekly Review",
			description: "Plan the upcoming week.",
			periodicity: domain.PeriodicityWeekly,
			completions: []time.Time{monthsAgo(2, 10), monthsAgo(1, 15), today},
		},
		{
			name:        "Water the Plants",
			description: "Check soil and water if needed.",
			periodicity: domain.PeriodicityWeekly,
			completions: []time.Time{monthsAgo(1, 1), today},
		},
		{
			name:        "Call Family or Friends",
			description: "Catch up with a loved one.",
			periodicity: domain.PeriodicityWeekly,
			completions: []time.Time{monthsAgo(2, 1), monthsAgo(1, 1)},
		},
		{
			name:        "Pay Monthly Bills",
			description: "Pay rent, utilities, etc.",
			periodicity: domain.PeriodicityMonthly,
			completions: []time.Time{monthsAgo(2, 28)},
		},
		{
			name:        "Review Monthly Budget",
			description: "Check spending against budget.",
			periodicity: domain.PeriodicityMonthly,
			completions: []time.Time{monthsAgo(1, 25), today},
		},
	}
}

// SeedDemoData populates the repositories with the demo fixture set.
// Habit creation dates are backdated so every fixture completion is valid,
// and existing habits with the same name are left alone, making reseeding
// safe.
func SeedDemoData(ctx context.Context, habits domain.HabitRepository, completions domain.CompletionRepository, now time.Time) (int, error) {
	seeded := 0

	for _, f := range demoFixtures(now) {
		if _, err := habits.GetByName(ctx, f.name); err == nil {
			continue
		}

		habit, err := domain.NewHabit(f.name, f.description, f.periodicity)
		if err != nil {
			return seeded, fmt.Errorf("fixture %q: %w", f.name, err)
		}

		// Far enough back that even the oldest fixture completion
		// (first of the month two months ago) stays after creation.
		created := domain.DateOnly(now).AddDate(0, 0, -100)
		habit.CreatedAt = created
		habit.UpdatedAt = created

		if err := habits.Create(ctx, habit); err != nil {
			return seeded, fmt.Errorf("fixture %q: %w", f.name, err)
		}

		for _, day := range f.completions {
			completion, err := domain.NewCompletion(habit.ID, day)
			if err != nil {
				return seeded, fmt.Errorf("fixture %q: %w", f.name, err)
			}
			if err := completions.Create(ctx, completion); err != nil {
				return seeded, fmt.Errorf("fixture %q: %w", f.name, err)
			}
		}

		seeded++
	}

	return seeded, nil
}
