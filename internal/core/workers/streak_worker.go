package workers

import (
	"context"
	"log"
	"time"

	"github.com/habitloop/habit-analysis-engine/internal/core/analysis"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type CompletionRepository interface {
	ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker keeps the denormalized streak counters on habits in sync
// with their completion history. It runs the same pure analysis the query
// endpoints use, just asynchronously after each checkoff.
type StreakWorker struct {
	habitRepo      HabitRepository
	completionRepo CompletionRepository
	jobs           chan StreakJob
}

func NewStreakWorker(hRepo HabitRepository, cRepo CompletionRepository) *StreakWorker {
	return &StreakWorker{
		habitRepo:      hRepo,
		completionRepo: cRepo,
		jobs:           make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak Worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		log.Printf("Streak Worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker Error fetching habit %s: %v", job.HabitID, err)
		return
	}

	completions, err := w.completionRepo.ListByHabitID(ctx, job.HabitID)
	if err != nil {
		log.Printf("Worker Error fetching completions for %s: %v", job.HabitID, err)
		return
	}

	dates := domain.NormalizeDates(domain.CompletionDates(completions))

	result, err := analysis.AnalyzeStreaks(habit.Periodicity, habit.CreationDate(), dates, time.Now().UTC())
	if err != nil {
		log.Printf("Worker Error analyzing streaks for %s: %v", habit.Name, err)
		return
	}

	if habit.CurrentStreak != result.CurrentStreak || habit.LongestStreak != result.LongestStreak {
		if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, result.CurrentStreak, result.LongestStreak); err != nil {
			log.Printf("Worker Failed to update streaks for %s: %v", habit.Name, err)
		} else {
			log.Printf("Streaks updated for %s: Current=%d, Longest=%d", habit.Name, result.CurrentStreak, result.LongestStreak)
		}
	}
}
