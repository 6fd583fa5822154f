// Package analysis is the habit analysis engine: pure, deterministic
// calendar arithmetic over a habit's periodicity and its completion
// history. Nothing in this package touches a clock, a store, or any
// shared state; every function computes from the snapshot it is given.
package analysis

import (
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

const dayDuration = 24 * time.Hour

// PeriodIndex maps a calendar date to its period index relative to the
// anchor date (the habit's creation day). Index 0 is the period containing
// the anchor; indices grow monotonically with the calendar.
//
// Daily and weekly periods are anchored to the creation date itself, so a
// habit created mid-week is not penalized for a partial first week.
// Monthly periods are calendar months, indexed by (year, month); the day
// of month plays no role.
func PeriodIndex(p domain.Periodicity, anchor, date time.Time) (int, error) {
	anchor = domain.DateOnly(anchor)
	date = domain.DateOnly(date)

	switch p {
	case domain.PeriodicityDaily:
		return daysBetween(anchor, date), nil
	case domain.PeriodicityWeekly:
		return floorDiv(daysBetween(anchor, date), 7), nil
	case domain.PeriodicityMonthly:
		return (date.Year()-anchor.Year())*12 + int(date.Month()-anchor.Month()), nil
	default:
		return 0, domain.ErrInvalidPeriodicity
	}
}

// PeriodBounds returns the half-open calendar range [start, end) of the
// period at the given index.
func PeriodBounds(p domain.Periodicity, anchor time.Time, index int) (time.Time, time.Time, error) {
	anchor = domain.DateOnly(anchor)

	switch p {
	case domain.PeriodicityDaily:
		start := anchor.AddDate(0, 0, index)
		return start, start.AddDate(0, 0, 1), nil
	case domain.PeriodicityWeekly:
		start := anchor.AddDate(0, 0, index*7)
		return start, start.AddDate(0, 0, 7), nil
	case domain.PeriodicityMonthly:
		// time.Date normalizes month overflow, so February through
		// 31-day months each come out as exactly one period.
		start := time.Date(anchor.Year(), anchor.Month()+time.Month(index), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriodicity
	}
}

// CurrentDeadline is the exclusive end of the period containing asOf,
// i.e. the moment by which the current checkoff is due.
func CurrentDeadline(p domain.Periodicity, anchor, asOf time.Time) (time.Time, error) {
	idx, err := PeriodIndex(p, anchor, asOf)
	if err != nil {
		return time.Time{}, err
	}
	if idx < 0 {
		idx = 0
	}

	_, end, err := PeriodBounds(p, anchor, idx)
	if err != nil {
		return time.Time{}, err
	}
	return end, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / dayDuration)
}

// floorDiv rounds toward negative infinity so that dates before the
// anchor land in negative periods instead of sharing period 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
