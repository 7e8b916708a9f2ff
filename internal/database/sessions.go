package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/models"
)

// FocusSessionRepository handles focus session database operations
type FocusSessionRepository struct {
	db *DB
}

// NewFocusSessionRepository creates a new focus session repository
func NewFocusSessionRepository(db *DB) *FocusSessionRepository {
	return &FocusSessionRepository{db: db}
}

// Create starts a new focus session
func (r *FocusSessionRepository) Create(ctx context.Context, session *models.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (id, user_id, task_id, start_time, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	var taskID any
	if session.TaskID != nil {
		taskID = *session.TaskID
	}

	err := r.db.QueryRowContext(ctx, query,
		session.ID,
		session.UserID,
		taskID,
		session.StartTime,
		session.Notes,
		time.Now(),
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create focus session: %w", err)
	}

	return nil
}

// Stop closes an open session, recording end time and the focus quality rating.
// Quality may be nil when the user skips the rating.
func (r *FocusSessionRepository) Stop(ctx context.Context, id uuid.UUID, endTime time.Time, quality *int) error {
	query := `
		UPDATE focus_sessions
		SET end_time = $2, focus_quality = $3
		WHERE id = $1 AND end_time IS NULL
	`

	var qualityVal sql.NullInt64
	if quality != nil {
		qualityVal = sql.NullInt64{Int64: int64(*quality), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, id, endTime, qualityVal)
	if err != nil {
		return fmt.Errorf("failed to stop focus session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("focus session not found or already stopped")
	}

	return nil
}

// GetByID retrieves a focus session by ID
func (r *FocusSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FocusSession, error) {
	query := `
		SELECT id, user_id, task_id, start_time, end_time, focus_quality, notes, created_at
		FROM focus_sessions
		WHERE id = $1
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("focus session not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get focus session: %w", err)
	}

	return session, nil
}

// GetRecentByUserID retrieves the most recent completed sessions for a user,
// newest first. The history-based optimizer feeds on these.
func (r *FocusSessionRepository) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error) {
	query := `
		SELECT id, user_id, task_id, start_time, end_time, focus_quality, notes, created_at
		FROM focus_sessions
		WHERE user_id = $1 AND end_time IS NOT NULL
		ORDER BY start_time DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.FocusSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan focus session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating focus sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row rowScanner) (*models.FocusSession, error) {
	session := &models.FocusSession{}
	var taskID uuid.NullUUID
	var endTime sql.NullTime
	var quality sql.NullInt64

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&taskID,
		&session.StartTime,
		&endTime,
		&quality,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		session.TaskID = &taskID.UUID
	}
	if endTime.Valid {
		session.EndTime = &endTime.Time
	}
	if quality.Valid {
		q := int(quality.Int64)
		session.FocusQuality = &q
	}

	return session, nil
}
