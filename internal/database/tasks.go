package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, priority, complexity, estimated_duration, context, energy_level, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	var estimated sql.NullInt64
	if task.EstimatedDuration != nil {
		estimated = sql.NullInt64{Int64: int64(*task.EstimatedDuration), Valid: true}
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Priority,
		task.Complexity,
		estimated,
		task.Context,
		task.EnergyLevel,
		task.Completed,
		now,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, priority, complexity, estimated_duration, context, energy_level, completed, created_at, updated_at, completed_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// GetIncompleteByUserID retrieves all incomplete tasks for a user. These are
// the candidates the scheduler places into a day plan.
func (r *TaskRepository) GetIncompleteByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, priority, complexity, estimated_duration, context, energy_level, completed, created_at, updated_at, completed_at
		FROM tasks
		WHERE user_id = $1 AND completed = FALSE
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// GetByUserIDPaginated retrieves tasks for a user with pagination, optionally
// filtered by priority and completion state. Returns the page plus the total count.
func (r *TaskRepository) GetByUserIDPaginated(ctx context.Context, userID uuid.UUID, priority *models.TaskPriority, completed *bool, page, pageSize int) ([]*models.Task, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	argIndex := 2

	if priority != nil {
		where += fmt.Sprintf(" AND priority = $%d", argIndex)
		args = append(args, string(*priority))
		argIndex++
	}

	if completed != nil {
		where += fmt.Sprintf(" AND completed = $%d", argIndex)
		args = append(args, *completed)
		argIndex++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, priority, complexity, estimated_duration, context, energy_level, completed, created_at, updated_at, completed_at
		FROM tasks
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, priority = $3, complexity = $4, estimated_duration = $5, context = $6, energy_level = $7, completed = $8, updated_at = $9, completed_at = $10
		WHERE id = $1
		RETURNING updated_at
	`

	var estimated sql.NullInt64
	if task.EstimatedDuration != nil {
		estimated = sql.NullInt64{Int64: int64(*task.EstimatedDuration), Valid: true}
	}

	var completedAt sql.NullTime
	if task.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Priority,
		task.Complexity,
		estimated,
		task.Context,
		task.EnergyLevel,
		task.Completed,
		now,
		completedAt,
	).Scan(&task.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("task not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Complete marks a task as completed with the current timestamp
func (r *TaskRepository) Complete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tasks
		SET completed = TRUE, completed_at = $2, updated_at = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

// Delete deletes a task by ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var estimated sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Priority,
		&task.Complexity,
		&estimated,
		&task.Context,
		&task.EnergyLevel,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if estimated.Valid {
		minutes := int(estimated.Int64)
		task.EstimatedDuration = &minutes
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return task, nil
}

func collectTasks(rows *sql.Rows) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}
