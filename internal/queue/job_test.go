package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	planDate := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	job := NewJob(JobTypeScheduleOptimization, userID, &planDate)

	if job.ID == uuid.Nil {
		t.Error("Expected job ID to be set")
	}
	if job.Type != JobTypeScheduleOptimization {
		t.Errorf("Expected job type to be %s, got %s", JobTypeScheduleOptimization, job.Type)
	}
	if job.UserID != userID {
		t.Errorf("Expected user ID to be %s, got %s", userID, job.UserID)
	}
	if job.PlanDate == nil || !job.PlanDate.Equal(planDate) {
		t.Errorf("Expected plan date to be %s, got %v", planDate, job.PlanDate)
	}
	if job.Metadata == nil {
		t.Error("Expected metadata to be initialized")
	}
	if job.RetryCount != 0 {
		t.Errorf("Expected retry count to be 0, got %d", job.RetryCount)
	}
	if job.MaxRetries != 3 {
		t.Errorf("Expected max retries to be 3, got %d", job.MaxRetries)
	}
}

func TestNewJob_NoPlanDate(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeProfileRefresh, uuid.New(), nil)

	if job.Type != JobTypeProfileRefresh {
		t.Errorf("Expected job type to be %s, got %s", JobTypeProfileRefresh, job.Type)
	}
	if job.PlanDate != nil {
		t.Errorf("Expected nil plan date, got %v", job.PlanDate)
	}
}

func TestJob_ShouldProcess(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name      string
		notBefore *time.Time
		notAfter  *time.Time
		want      bool
	}{
		{"no time constraints", nil, nil, true},
		{"not before in past", timePtr(now.Add(-1 * time.Hour)), nil, true},
		{"not before in future", timePtr(now.Add(1 * time.Hour)), nil, false},
		{"not after in past", nil, timePtr(now.Add(-1 * time.Hour)), false},
		{"not after in future", nil, timePtr(now.Add(1 * time.Hour)), true},
		{"within time window", timePtr(now.Add(-1 * time.Hour)), timePtr(now.Add(1 * time.Hour)), true},
		{"outside time window - before", timePtr(now.Add(1 * time.Hour)), timePtr(now.Add(2 * time.Hour)), false},
		{"outside time window - after", timePtr(now.Add(-2 * time.Hour)), timePtr(now.Add(-1 * time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &Job{
				ID:        uuid.New(),
				Type:      JobTypeScheduleOptimization,
				UserID:    uuid.New(),
				NotBefore: tt.notBefore,
				NotAfter:  tt.notAfter,
			}
			if got := job.ShouldProcess(); got != tt.want {
				t.Errorf("ShouldProcess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name     string
		notAfter *time.Time
		want     bool
	}{
		{"no expiration", nil, false},
		{"expired", timePtr(now.Add(-1 * time.Hour)), true},
		{"not expired", timePtr(now.Add(1 * time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &Job{
				ID:       uuid.New(),
				Type:     JobTypeScheduleOptimization,
				UserID:   uuid.New(),
				NotAfter: tt.notAfter,
			}
			if got := job.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_CanRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		retryCount int
		maxRetries int
		want       bool
	}{
		{"no retries yet", 0, 3, true},
		{"one retry", 1, 3, true},
		{"max retries minus one", 2, 3, true},
		{"at max retries", 3, 3, false},
		{"exceeded max retries", 4, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &Job{
				ID:         uuid.New(),
				Type:       JobTypeScheduleOptimization,
				UserID:     uuid.New(),
				RetryCount: tt.retryCount,
				MaxRetries: tt.maxRetries,
			}
			if got := job.CanRetry(); got != tt.want {
				t.Errorf("CanRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_IncrementRetry(t *testing.T) {
	t.Parallel()

	job := &Job{
		ID:         uuid.New(),
		Type:       JobTypeProfileRefresh,
		UserID:     uuid.New(),
		RetryCount: 0,
		MaxRetries: 3,
	}

	for i := 1; i <= 3; i++ {
		job.IncrementRetry()
		if job.RetryCount != i {
			t.Errorf("Expected retry count %d after increment, got %d", i, job.RetryCount)
		}
	}
}

// Helper function to create time pointers
func timePtr(t time.Time) *time.Time {
	return &t
}
