package analysis

import "sort"

// StruggleResult is the comparable "how much did this habit hurt" record.
// Score = break count + total gap days, equal weighting: every distinct
// break costs one point plus its full day span.
type StruggleResult struct {
	HabitID    string `json:"habit_id"`
	Name       string `json:"name"`
	BreakCount int    `json:"break_count"`
	GapDays    int    `json:"gap_days"`
	Score      int    `json:"score"`
}

// Struggle folds a streak result's breaks into a struggle score.
func Struggle(habitID, name string, streaks StreakResult) StruggleResult {
	gapDays := 0
	for _, b := range streaks.Breaks {
		gapDays += b.GapDays()
	}

	return StruggleResult{
		HabitID:    habitID,
		Name:       name,
		BreakCount: len(streaks.Breaks),
		GapDays:    gapDays,
		Score:      len(streaks.Breaks) + gapDays,
	}
}

// Rank orders struggle results worst-first: score descending, ties broken
// by name ascending so the ordering is stable across runs. The input is
// not mutated.
func Rank(results []StruggleResult) []StruggleResult {
	ranked := make([]StruggleResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}
