package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/models"
)

// TaskRepositoryInterface defines the interface for task repository operations
// This interface enables better testability by allowing mock implementations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetIncompleteByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	GetByUserIDPaginated(ctx context.Context, userID uuid.UUID, priority *models.TaskPriority, completed *bool, page, pageSize int) ([]*models.Task, int, error)
	Update(ctx context.Context, task *models.Task) error
	Complete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FocusSessionRepositoryInterface defines the interface for focus session repository operations
type FocusSessionRepositoryInterface interface {
	Create(ctx context.Context, session *models.FocusSession) error
	Stop(ctx context.Context, id uuid.UUID, endTime time.Time, quality *int) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FocusSession, error)
	GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error)
}

// DayPlanRepositoryInterface defines the interface for day plan repository operations
type DayPlanRepositoryInterface interface {
	Upsert(ctx context.Context, plan *models.DayPlan) error
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error)
	UpdateBlocks(ctx context.Context, planID uuid.UUID, blocks []models.TimeBlock, stats models.ScheduleStats) error
}

// UserActivityRepositoryInterface defines the activity lookups workers need
type UserActivityRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserActivity, error)
	GetEligibleUsersForOptimization(ctx context.Context) ([]uuid.UUID, error)
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface         = (*TaskRepository)(nil)
	_ FocusSessionRepositoryInterface = (*FocusSessionRepository)(nil)
	_ DayPlanRepositoryInterface      = (*DayPlanRepository)(nil)
	_ UserActivityRepositoryInterface = (*UserActivityRepository)(nil)
)
