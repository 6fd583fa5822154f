package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/habitloop/habit-analysis-engine/internal/adapters/repository"
	"github.com/habitloop/habit-analysis-engine/internal/core/analysis"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
	"github.com/habitloop/habit-analysis-engine/internal/core/services"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		periodicity, _ := cmd.Flags().GetString("periodicity")
		description, _ := cmd.Flags().GetString("description")

		habit, err := b.habits.Create(ctx, services.CreateHabitInput{
			Name:        args[0],
			Description: description,
			Periodicity: periodicity,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created %s habit %q (%s)\n", habit.Periodicity, habit.Name, habit.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked habits with their current status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		asOf, err := asOfDate(cmd)
		if err != nil {
			return err
		}

		periodicity, _ := cmd.Flags().GetString("periodicity")

		var habits []*domain.Habit
		if periodicity == "" {
			habits, err = b.habits.List(ctx)
		} else {
			habits, err = b.habits.ListByPeriodicity(ctx, periodicity)
		}
		if err != nil {
			return err
		}

		if len(habits) == 0 {
			fmt.Println(mutedStyle.Render("No habits tracked yet. Create one with: habitctl create <name>"))
			return nil
		}

		rows := [][]string{{"", "NAME", "PERIODICITY", "STREAK", "LONGEST", "DUE BY", "DESCRIPTION"}}
		for _, h := range habits {
			streaks, err := b.analysis.GetStreaks(ctx, h.ID, asOf)
			if err != nil {
				return err
			}

			done, err := b.doneThisPeriod(ctx, h, asOf)
			if err != nil {
				return err
			}

			status := dueStyle.Render("☐")
			if done {
				status = doneStyle.Render("☑")
			}

			deadline, err := analysis.CurrentDeadline(h.Periodicity, h.CreationDate(), asOf)
			if err != nil {
				return err
			}

			rows = append(rows, []string{
				status,
				truncate(h.Name, 30),
				h.Periodicity.String(),
				fmt.Sprintf("%d", streaks.CurrentStreak),
				fmt.Sprintf("%d", streaks.LongestStreak),
				deadline.Format(time.DateOnly),
				mutedStyle.Render(truncate(h.Description, 40)),
			})
		}

		fmt.Println(renderTitle(fmt.Sprintf("Habits as of %s", domain.DateOnly(asOf).Format(time.DateOnly))))
		fmt.Print(renderTable(rows))
		return nil
	},
}

var checkoffCmd = &cobra.Command{
	Use:   "checkoff <habit>",
	Short: "Mark a habit as completed (by id or name)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		var date time.Time
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, err = time.Parse(time.DateOnly, raw)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", raw)
			}
		}

		completion, recorded, err := b.habits.Checkoff(ctx, args[0], date)
		if err != nil {
			return err
		}

		if !recorded {
			fmt.Println("Already checked off for that day, nothing recorded.")
			return nil
		}

		fmt.Printf("%s Checked off for %s\n", doneStyle.Render("☑"), completion.Date.Format(time.DateOnly))
		return nil
	},
}

var streaksCmd = &cobra.Command{
	Use:   "streaks <habit>",
	Short: "Show streaks and breaks for one habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		asOf, err := asOfDate(cmd)
		if err != nil {
			return err
		}

		habit, err := b.habits.Find(ctx, args[0])
		if err != nil {
			return err
		}

		result, err := b.analysis.GetStreaks(ctx, habit.ID, asOf)
		if err != nil {
			return err
		}

		fmt.Println(renderTitle(fmt.Sprintf("%s (%s)", habit.Name, habit.Periodicity)))
		fmt.Printf("Current streak: %s\n", plural(result.CurrentStreak, "period"))
		fmt.Printf("Longest streak: %s\n", plural(result.LongestStreak, "period"))

		if len(result.Breaks) == 0 {
			fmt.Println(doneStyle.Render("No breaks. Keep it up!"))
			return nil
		}

		rows := [][]string{{"FROM", "TO", "MISSED PERIODS", "GAP DAYS"}}
		for _, br := range result.Breaks {
			rows = append(rows, []string{
				br.Start.Format(time.DateOnly),
				// End is exclusive, show the last covered day.
				br.End.AddDate(0, 0, -1).Format(time.DateOnly),
				fmt.Sprintf("%d", br.Periods()),
				fmt.Sprintf("%d", br.GapDays()),
			})
		}
		fmt.Println()
		fmt.Print(renderTable(rows))
		return nil
	},
}

var struggleCmd = &cobra.Command{
	Use:   "struggle [habit]",
	Short: "Score how much a habit is struggled with, or rank all habits",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		asOf, err := asOfDate(cmd)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			habit, err := b.habits.Find(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := b.analysis.GetStruggle(ctx, habit.ID, asOf)
			if err != nil {
				return err
			}

			fmt.Println(renderTitle(habit.Name))
			fmt.Printf("Score %d (%s, %s)\n",
				result.Score, plural(result.BreakCount, "break"), plural(result.GapDays, "gap day"))
			return nil
		}

		results, err := b.analysis.RankStruggles(ctx, asOf)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println(mutedStyle.Render("No habits tracked yet."))
			return nil
		}

		rows := [][]string{{"#", "NAME", "SCORE", "BREAKS", "GAP DAYS"}}
		for i, r := range results {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				truncate(r.Name, 30),
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.BreakCount),
				fmt.Sprintf("%d", r.GapDays),
			})
		}

		fmt.Println(renderTitle("Most struggled first"))
		fmt.Print(renderTable(rows))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate report across all habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		asOf, err := asOfDate(cmd)
		if err != nil {
			return err
		}

		report, err := b.analysis.GetSummary(ctx, asOf)
		if err != nil {
			return err
		}

		fmt.Println(renderTitle(fmt.Sprintf("Summary as of %s", domain.DateOnly(asOf).Format(time.DateOnly))))
		fmt.Printf("Tracked habits: %d\n\n", report.TotalHabits)

		rows := [][]string{{"PERIODICITY", "COMPLETED", "TOTAL"}}
		for _, p := range domain.Periodicities() {
			count := report.ByPeriodicity[p]
			rows = append(rows, []string{
				p.String(),
				fmt.Sprintf("%d", count.Completed),
				fmt.Sprintf("%d", count.Total),
			})
		}
		fmt.Print(renderTable(rows))

		if report.TotalHabits == 0 {
			return nil
		}

		name, length, err := b.analysis.LongestStreak(ctx, asOf)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Best habit:     %s\n", doneStyle.Render(report.BestHabitName))
		fmt.Printf("Most struggled: %s\n", dueStyle.Render(report.MostStruggledHabitName))
		fmt.Printf("Longest streak: %s (%s)\n", name, plural(length, "period"))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <habit>",
	Short: "Delete a habit and its completion history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		habit, err := b.habits.Find(ctx, args[0])
		if err != nil {
			return err
		}

		if err := b.habits.Delete(ctx, habit.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted %q and its completion history.\n", habit.Name)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with the demo habit fixtures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := openBackend(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		seeded, err := repository.SeedDemoData(ctx, b.habitRepo, b.completionRepo, time.Now().UTC())
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %s.\n", plural(seeded, "demo habit"))
		return nil
	},
}

// doneThisPeriod reports whether the habit has a completion in the period
// containing asOf.
func (b *backend) doneThisPeriod(ctx context.Context, h *domain.Habit, asOf time.Time) (bool, error) {
	currentIdx, err := analysis.PeriodIndex(h.Periodicity, h.CreationDate(), asOf)
	if err != nil {
		return false, err
	}
	if currentIdx < 0 {
		currentIdx = 0
	}

	completions, err := b.completionRepo.ListByHabitID(ctx, h.ID)
	if err != nil {
		return false, err
	}

	for _, c := range completions {
		idx, err := analysis.PeriodIndex(h.Periodicity, h.CreationDate(), c.Date)
		if err != nil {
			return false, err
		}
		if idx == currentIdx {
			return true, nil
		}
	}
	return false, nil
}
