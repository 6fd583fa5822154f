package analysis

import (
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

// HabitOutcome pairs a habit's identity with its computed results; the
// aggregator folds over these without doing any calendar arithmetic of
// its own.
type HabitOutcome struct {
	HabitID     string             `json:"habit_id"`
	Name        string             `json:"name"`
	Periodicity domain.Periodicity `json:"periodicity"`
	Streaks     StreakResult       `json:"streaks"`
	Struggle    StruggleResult     `json:"struggle"`
}

// PeriodicityCount reports how many habits of one periodicity are
// currently completed (current streak >= 1) out of the total tracked.
type PeriodicityCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type SummaryReport struct {
	TotalHabits   int                                  `json:"total_habits"`
	ByPeriodicity map[domain.Periodicity]PeriodicityCount `json:"by_periodicity"`

	BestHabitID   string `json:"best_habit_id,omitempty"`
	BestHabitName string `json:"best_habit_name,omitempty"`

	MostStruggledHabitID   string `json:"most_struggled_habit_id,omitempty"`
	MostStruggledHabitName string `json:"most_struggled_habit_name,omitempty"`
}

// Summarize rolls all habit outcomes up into a flat, serializable report.
// Best performer: minimum score, ties by higher current streak, then name
// ascending. Most struggled: maximum score, ties by lower current streak,
// then name ascending. Name is always the final tie-break so output is
// reproducible.
func Summarize(outcomes []HabitOutcome) SummaryReport {
	report := SummaryReport{
		TotalHabits:   len(outcomes),
		ByPeriodicity: make(map[domain.Periodicity]PeriodicityCount, 3),
	}

	for _, p := range domain.Periodicities() {
		report.ByPeriodicity[p] = PeriodicityCount{}
	}

	if len(outcomes) == 0 {
		return report
	}

	best := outcomes[0]
	worst := outcomes[0]

	for i, o := range outcomes {
		count := report.ByPeriodicity[o.Periodicity]
		count.Total++
		if o.Streaks.CurrentStreak >= 1 {
			count.Completed++
		}
		report.ByPeriodicity[o.Periodicity] = count

		if i == 0 {
			continue
		}
		if betterThan(o, best) {
			best = o
		}
		if worseThan(o, worst) {
			worst = o
		}
	}

	report.BestHabitID = best.HabitID
	report.BestHabitName = best.Name
	report.MostStruggledHabitID = worst.HabitID
	report.MostStruggledHabitName = worst.Name

	return report
}

func betterThan(a, b HabitOutcome) bool {
	if a.Struggle.Score != b.Struggle.Score {
		return a.Struggle.Score < b.Struggle.Score
	}
	if a.Streaks.CurrentStreak != b.Streaks.CurrentStreak {
		return a.Streaks.CurrentStreak > b.Streaks.CurrentStreak
	}
	return a.Name < b.Name
}

func worseThan(a, b HabitOutcome) bool {
	if a.Struggle.Score != b.Struggle.Score {
		return a.Struggle.Score > b.Struggle.Score
	}
	if a.Streaks.CurrentStreak != b.Streaks.CurrentStreak {
		return a.Streaks.CurrentStreak < b.Streaks.CurrentStreak
	}
	return a.Name < b.Name
}
