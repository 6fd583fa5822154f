package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Create(ctx context.Context, c *domain.Completion) error {
	query := `
        INSERT INTO completions (id, habit_id, date, created_at)
        VALUES (:id, :habit_id, :date, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}

	return nil
}

func (r *PostgresCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	var completions []*domain.Completion

	query := `SELECT * FROM completions WHERE habit_id = $1`
	if err := r.db.SelectContext(ctx, &completions, query, habitID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return completions, nil
}

func (r *PostgresCompletionRepository) ExistsOnDate(ctx context.Context, habitID string, date time.Time) (bool, error) {
	var count int

	query := `SELECT count(*) FROM completions WHERE habit_id = $1 AND date = $2`
	if err := r.db.GetContext(ctx, &count, query, habitID, domain.DateOnly(date)); err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}

	return count > 0, nil
}

func (r *PostgresCompletionRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE habit_id = $1`, habitID); err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	return nil
}
