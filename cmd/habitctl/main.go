// habitctl is the command line front end for the habit analysis engine.
// It talks directly to the store: Postgres when configured through the
// environment, or an in-memory demo data set with --demo.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/habitloop/habit-analysis-engine/internal/adapters/repository"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
	"github.com/habitloop/habit-analysis-engine/internal/core/services"
)

var demoMode bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "habitctl",
	Short: "Track habits and analyze streaks, breaks and struggle scores",
	Long: `habitctl manages tracked habits and runs the analysis engine over
their completion history.

Habits can be daily, weekly or monthly. Every analysis command accepts
--as-of to reproduce results for any reference date.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "use an in-memory store seeded with demo data")

	createCmd.Flags().StringP("periodicity", "p", "daily", "daily, weekly or monthly")
	createCmd.Flags().StringP("description", "d", "", "habit description")
	listCmd.Flags().StringP("periodicity", "p", "", "only show habits with this periodicity")
	checkoffCmd.Flags().String("date", "", "completion date (YYYY-MM-DD, default today)")

	for _, cmd := range []*cobra.Command{listCmd, streaksCmd, struggleCmd, summaryCmd} {
		cmd.Flags().String("as-of", "", "reference date for the analysis (YYYY-MM-DD, default today)")
	}

	rootCmd.AddCommand(createCmd, listCmd, checkoffCmd, streaksCmd, struggleCmd, summaryCmd, deleteCmd, seedCmd)
}

// backend bundles the store and the services on top of it. The CLI holds
// the repositories directly so display helpers can inspect completions.
type backend struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	habits         *services.HabitService
	analysis       *services.AnalysisService
	db             *sqlx.DB
}

func (b *backend) Close() {
	if b.db != nil {
		b.db.Close()
	}
}

func openBackend(ctx context.Context) (*backend, error) {
	b := &backend{}

	if demoMode {
		b.habitRepo = repository.NewInMemoryHabitRepository()
		b.completionRepo = repository.NewInMemoryCompletionRepository()
		if _, err := repository.SeedDemoData(ctx, b.habitRepo, b.completionRepo, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("seeding demo data: %w", err)
		}
	} else {
		_ = godotenv.Load()

		dbHost := os.Getenv("DB_HOST")
		if dbHost == "" {
			dbHost = "localhost"
		}
		dbPort := os.Getenv("DB_PORT")
		if dbPort == "" {
			dbPort = "5432"
		}

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), dbHost, dbPort, os.Getenv("DB_NAME"))

		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("connecting to database (try --demo for a local sandbox): %w", err)
		}

		b.db = db
		b.habitRepo = repository.NewPostgresHabitRepository(db)
		b.completionRepo = repository.NewPostgresCompletionRepository(db)
	}

	b.habits = services.NewHabitService(b.habitRepo, b.completionRepo, nil)
	b.analysis = services.NewAnalysisService(b.habitRepo, b.completionRepo)

	return b, nil
}

// asOfDate resolves the --as-of flag, defaulting to now.
func asOfDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	if raw == "" {
		return time.Now().UTC(), nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}
