package analysis

import (
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

// Break is a maximal run of consecutive periods without a single
// completion, recorded with the calendar bounds of its first and last
// period. The range [Start, End) is half-open.
type Break struct {
	FromIndex int       `json:"from_index"`
	ToIndex   int       `json:"to_index"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Periods is the number of missed periods the break spans.
func (b Break) Periods() int {
	return b.ToIndex - b.FromIndex + 1
}

// GapDays is the calendar-day span of the break.
func (b Break) GapDays() int {
	return daysBetween(b.Start, b.End)
}

type StreakResult struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	Breaks        []Break `json:"breaks"`
}

// AnalyzeStreaks walks the period range from the habit's creation day to
// the injected as-of date and derives streaks and breaks.
//
// Precondition: dates must be normalized (distinct calendar days, sorted
// ascending, see domain.NormalizeDates). The function does not repair
// malformed input.
//
// A completion dated before createdAt fails with
// domain.ErrCheckoffBeforeCreation: that is a data-integrity problem
// upstream which the engine refuses to mask. Completions dated after
// asOf lie outside the snapshot and are ignored.
func AnalyzeStreaks(p domain.Periodicity, createdAt time.Time, dates []time.Time, asOf time.Time) (StreakResult, error) {
	if !p.Valid() {
		return StreakResult{}, domain.ErrInvalidPeriodicity
	}

	anchor := domain.DateOnly(createdAt)

	asOfIndex, err := PeriodIndex(p, anchor, asOf)
	if err != nil {
		return StreakResult{}, err
	}
	if asOfIndex < 0 {
		// An as-of date before creation degenerates to the creation
		// period itself.
		asOfIndex = 0
	}

	hits := make(map[int]bool, len(dates))
	for _, d := range dates {
		if domain.DateOnly(d).Before(anchor) {
			return StreakResult{}, domain.ErrCheckoffBeforeCreation
		}
		idx, err := PeriodIndex(p, anchor, d)
		if err != nil {
			return StreakResult{}, err
		}
		if idx <= asOfIndex {
			hits[idx] = true
		}
	}

	if len(hits) == 0 {
		// An untouched habit is a single break over its whole lifetime,
		// so it surfaces as maximally struggled instead of vanishing
		// from the ranking.
		br, err := newBreak(p, anchor, 0, asOfIndex)
		if err != nil {
			return StreakResult{}, err
		}
		return StreakResult{Breaks: []Break{br}}, nil
	}

	var (
		breaks     []Break
		longest    int
		runLen     int
		lastRunLen int
		lastRunEnd = -1
		missFrom   = -1
	)

	for i := 0; i <= asOfIndex; i++ {
		if hits[i] {
			if missFrom >= 0 {
				br, err := newBreak(p, anchor, missFrom, i-1)
				if err != nil {
					return StreakResult{}, err
				}
				breaks = append(breaks, br)
				missFrom = -1
			}
			runLen++
			lastRunLen = runLen
			lastRunEnd = i
			if runLen > longest {
				longest = runLen
			}
		} else {
			if missFrom < 0 {
				missFrom = i
			}
			runLen = 0
		}
	}

	// A trailing miss run is trimmed so the still-open as-of period never
	// counts as broken on its own.
	if missFrom >= 0 && missFrom < asOfIndex {
		br, err := newBreak(p, anchor, missFrom, asOfIndex-1)
		if err != nil {
			return StreakResult{}, err
		}
		breaks = append(breaks, br)
	}

	current := 0
	if lastRunEnd >= asOfIndex-1 {
		current = lastRunLen
	}

	return StreakResult{
		CurrentStreak: current,
		LongestStreak: longest,
		Breaks:        breaks,
	}, nil
}

func newBreak(p domain.Periodicity, anchor time.Time, from, to int) (Break, error) {
	start, _, err := PeriodBounds(p, anchor, from)
	if err != nil {
		return Break{}, err
	}
	_, end, err := PeriodBounds(p, anchor, to)
	if err != nil {
		return Break{}, err
	}

	return Break{FromIndex: from, ToIndex: to, Start: start, End: end}, nil
}
