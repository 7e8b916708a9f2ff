package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/models"
)

// UserActivityRepository handles user activity database operations
type UserActivityRepository struct {
	db *DB
}

// NewUserActivityRepository creates a new user activity repository
func NewUserActivityRepository(db *DB) *UserActivityRepository {
	return &UserActivityRepository{db: db}
}

// GetByUserID retrieves user activity by user ID
func (r *UserActivityRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserActivity, error) {
	activity := &models.UserActivity{}

	query := `
		SELECT user_id, last_api_interaction, optimization_paused, created_at, updated_at
		FROM user_activity
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&activity.UserID,
		&activity.LastAPIInteraction,
		&activity.OptimizationPaused,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	return activity, nil
}

// UpdateLastInteraction updates the last API interaction timestamp and
// unpauses optimization for the user.
func (r *UserActivityRepository) UpdateLastInteraction(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO user_activity (user_id, last_api_interaction, optimization_paused, created_at, updated_at)
		VALUES ($1, $2, false, $2, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET last_api_interaction = EXCLUDED.last_api_interaction,
		    optimization_paused = false,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update last interaction: %w", err)
	}

	return nil
}

// SetOptimizationPaused sets the optimization paused flag
func (r *UserActivityRepository) SetOptimizationPaused(ctx context.Context, userID uuid.UUID, paused bool) error {
	query := `
		UPDATE user_activity
		SET optimization_paused = $1, updated_at = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, paused, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set optimization paused: %w", err)
	}

	return nil
}

// GetEligibleUsersForOptimization returns users whose optimization is not paused
func (r *UserActivityRepository) GetEligibleUsersForOptimization(ctx context.Context) ([]uuid.UUID, error) {
	return r.queryUserIDs(ctx, `
		SELECT user_id
		FROM user_activity
		WHERE optimization_paused = false
	`)
}

// GetUsersNeedingOptimizationPause returns users inactive for 3 days whose
// optimization has not been paused yet
func (r *UserActivityRepository) GetUsersNeedingOptimizationPause(ctx context.Context) ([]uuid.UUID, error) {
	return r.queryUserIDs(ctx, `
		SELECT user_id
		FROM user_activity
		WHERE last_api_interaction < NOW() - INTERVAL '3 days'
		  AND optimization_paused = false
	`)
}

func (r *UserActivityRepository) queryUserIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user ID: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return userIDs, nil
}
