package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/models"
)

// DayPlanRepository handles day plan database operations. Plans are keyed by
// (user_id, plan_date); regenerating a day replaces the stored plan.
type DayPlanRepository struct {
	db *DB
}

// NewDayPlanRepository creates a new day plan repository
func NewDayPlanRepository(db *DB) *DayPlanRepository {
	return &DayPlanRepository{db: db}
}

// Upsert stores a day plan, replacing any existing plan for the same user and day
func (r *DayPlanRepository) Upsert(ctx context.Context, plan *models.DayPlan) error {
	blocksJSON, err := json.Marshal(plan.Blocks)
	if err != nil {
		return fmt.Errorf("failed to marshal blocks: %w", err)
	}

	statsJSON, err := json.Marshal(plan.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `
		INSERT INTO day_plans (id, user_id, plan_date, style, blocks, stats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			style = EXCLUDED.style,
			blocks = EXCLUDED.blocks,
			stats = EXCLUDED.stats,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Date,
		plan.Style,
		blocksJSON,
		statsJSON,
		time.Now(),
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert day plan: %w", err)
	}

	return nil
}

// GetByUserAndDate retrieves the plan for a user on a given day, or nil when
// no plan has been generated yet.
func (r *DayPlanRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error) {
	query := `
		SELECT id, user_id, plan_date, style, blocks, stats, created_at, updated_at
		FROM day_plans
		WHERE user_id = $1 AND plan_date = $2
	`

	plan := &models.DayPlan{}
	var blocksJSON, statsJSON []byte

	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Date,
		&plan.Style,
		&blocksJSON,
		&statsJSON,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day plan: %w", err)
	}

	if err := json.Unmarshal(blocksJSON, &plan.Blocks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blocks: %w", err)
	}
	if err := json.Unmarshal(statsJSON, &plan.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return plan, nil
}

// UpdateBlocks replaces the blocks and stats of an existing plan. Used when a
// suggestion is applied or the optimizer reworks a stored schedule.
func (r *DayPlanRepository) UpdateBlocks(ctx context.Context, planID uuid.UUID, blocks []models.TimeBlock, stats models.ScheduleStats) error {
	blocksJSON, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("failed to marshal blocks: %w", err)
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `
		UPDATE day_plans
		SET blocks = $2, stats = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, planID, blocksJSON, statsJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update day plan blocks: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("day plan not found")
	}

	return nil
}
