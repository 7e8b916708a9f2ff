package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/queue"
)

// optimizationHour is the local hour nightly optimization runs at, chosen so
// plans are refreshed before the working day starts.
const optimizationHour = 4

// enqueueLeadTime is how far ahead of the run jobs are placed on the delayed
// exchange.
const enqueueLeadTime = 15 * time.Minute

// NightlyScheduler enqueues schedule optimization jobs for active users
type NightlyScheduler struct {
	jobQueue     queue.JobQueue
	activityRepo database.UserActivityRepositoryInterface
	logger       *zap.Logger
}

// NewNightlyScheduler creates a new nightly scheduler
func NewNightlyScheduler(jobQueue queue.JobQueue, activityRepo database.UserActivityRepositoryInterface, logger *zap.Logger) *NightlyScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NightlyScheduler{
		jobQueue:     jobQueue,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// ScheduleOptimizationJobs enqueues one delayed optimization job per eligible
// user, targeting the day plan of the next optimization run.
func (s *NightlyScheduler) ScheduleOptimizationJobs(ctx context.Context) error {
	nextRun := s.NextRun(time.Now())
	planDate := time.Date(nextRun.Year(), nextRun.Month(), nextRun.Day(), 0, 0, 0, 0, nextRun.Location())

	eligibleUsers, err := s.activityRepo.GetEligibleUsersForOptimization(ctx)
	if err != nil {
		return fmt.Errorf("failed to get eligible users: %w", err)
	}

	for _, userID := range eligibleUsers {
		if err := s.createOptimizationJob(ctx, userID, planDate, nextRun); err != nil {
			s.logger.Warn("optimization_job_enqueue_failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			// Continue with other users
		}
	}

	s.logger.Info("scheduled_optimization_jobs",
		zap.Int("user_count", len(eligibleUsers)),
		zap.Time("next_run", nextRun),
	)
	return nil
}

// NextRun returns the next nightly run strictly after now.
func (s *NightlyScheduler) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), optimizationHour, 0, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func (s *NightlyScheduler) createOptimizationJob(ctx context.Context, userID uuid.UUID, planDate, notBefore time.Time) error {
	job := queue.NewJob(queue.JobTypeScheduleOptimization, userID, &planDate)
	job.NotBefore = &notBefore

	// Expire stale jobs a day after their run so the DLQ sweeper can drop them
	notAfter := notBefore.Add(24 * time.Hour)
	job.NotAfter = &notAfter

	if err := s.jobQueue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue optimization job: %w", err)
	}
	return nil
}

// Start enqueues jobs once per nightly run until the context is canceled.
// Each cycle sleeps until shortly before the next run, enqueues, then waits
// out the run itself so a user gets exactly one delayed job per night.
func (s *NightlyScheduler) Start(ctx context.Context) {
	for {
		nextRun := s.NextRun(time.Now())

		if !sleepUntil(ctx, nextRun.Add(-enqueueLeadTime)) {
			return
		}
		if err := s.ScheduleOptimizationJobs(ctx); err != nil {
			s.logger.Error("optimization_scheduling_failed", zap.Error(err))
		}
		if !sleepUntil(ctx, nextRun.Add(time.Minute)) {
			return
		}
	}
}

// sleepUntil blocks until t or context cancellation, reporting false on cancel.
func sleepUntil(ctx context.Context, t time.Time) bool {
	wait := time.Until(t)
	if wait <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
