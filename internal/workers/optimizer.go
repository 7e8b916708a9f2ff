package workers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/queue"
	"github.com/flowday/flowday-api/internal/scheduler"
	"github.com/flowday/flowday-api/internal/services/ai"
)

// ProfileStore caches per-user hourly productivity profiles. Satisfied by
// cache.ProfileCache; nil disables caching.
type ProfileStore interface {
	Set(ctx context.Context, userID uuid.UUID, profile map[int]float64) error
}

// ScheduleOptimizer processes schedule optimization and profile refresh jobs
type ScheduleOptimizer struct {
	planRepo     database.DayPlanRepositoryInterface
	sessionRepo  database.FocusSessionRepositoryInterface
	activityRepo database.UserActivityRepositoryInterface
	profileStore ProfileStore
	narrator     ai.Narrator
	sessionLimit int
	logger       *zap.Logger
}

// NewScheduleOptimizer creates a new schedule optimizer worker
func NewScheduleOptimizer(
	planRepo database.DayPlanRepositoryInterface,
	sessionRepo database.FocusSessionRepositoryInterface,
	activityRepo database.UserActivityRepositoryInterface,
	profileStore ProfileStore,
	narrator ai.Narrator,
	sessionLimit int,
	logger *zap.Logger,
) *ScheduleOptimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleOptimizer{
		planRepo:     planRepo,
		sessionRepo:  sessionRepo,
		activityRepo: activityRepo,
		profileStore: profileStore,
		narrator:     narrator,
		sessionLimit: sessionLimit,
		logger:       logger,
	}
}

// ProcessScheduleOptimizationJob re-annotates a stored day plan against the
// user's recent focus history and persists the result.
func (o *ScheduleOptimizer) ProcessScheduleOptimizationJob(ctx context.Context, job *queue.Job) error {
	if job.PlanDate == nil {
		return fmt.Errorf("plan_date is required for schedule optimization job")
	}

	// Skip users whose optimization is paused for inactivity
	activity, err := o.activityRepo.GetByUserID(ctx, job.UserID)
	if err == nil && activity != nil && activity.OptimizationPaused {
		o.logger.Info("optimization_skipped_paused",
			zap.String("user_id", job.UserID.String()),
		)
		return nil
	}

	plan, err := o.planRepo.GetByUserAndDate(ctx, job.UserID, *job.PlanDate)
	if err != nil {
		return fmt.Errorf("failed to get day plan: %w", err)
	}
	if plan == nil {
		// No plan for that day; nothing to optimize
		o.logger.Info("optimization_skipped_no_plan",
			zap.String("user_id", job.UserID.String()),
			zap.Time("plan_date", *job.PlanDate),
		)
		return nil
	}

	if plan.UserID != job.UserID {
		return fmt.Errorf("day plan does not belong to user")
	}

	sessions, err := o.sessionRepo.GetRecentByUserID(ctx, job.UserID, o.sessionLimit)
	if err != nil {
		return fmt.Errorf("failed to get focus sessions: %w", err)
	}

	optimized, report := scheduler.OptimizeWithHistory(plan.Blocks, sessions)

	if err := o.planRepo.UpdateBlocks(ctx, plan.ID, optimized, plan.Stats); err != nil {
		return fmt.Errorf("failed to update day plan: %w", err)
	}

	// Refresh the cached productivity profile while the sessions are in hand.
	// Best effort: a cache miss just costs a recompute later.
	if o.profileStore != nil {
		if cacheErr := o.profileStore.Set(ctx, job.UserID, scheduler.HourlyProductivity(sessions)); cacheErr != nil {
			o.logger.Warn("profile_cache_refresh_failed",
				zap.String("user_id", job.UserID.String()),
				zap.Error(cacheErr),
			)
		}
	}

	if o.narrator != nil && report.BetterTimeSlots+report.Deweighted > 0 {
		summary, narrateErr := o.narrator.NarrateOptimization(ctx, &report)
		if narrateErr != nil {
			o.logger.Warn("optimization_narration_failed",
				zap.String("user_id", job.UserID.String()),
				zap.Error(narrateErr),
			)
		} else {
			o.logger.Info("optimization_narrated",
				zap.String("user_id", job.UserID.String()),
				zap.String("summary", summary),
			)
		}
	}

	o.logger.Info("schedule_optimized",
		zap.String("user_id", job.UserID.String()),
		zap.Time("plan_date", *job.PlanDate),
		zap.Int("better_time_slots", report.BetterTimeSlots),
		zap.Int("deweighted", report.Deweighted),
		zap.Float64("avg_confidence_before", report.AvgConfidenceBefore),
		zap.Float64("avg_confidence_after", report.AvgConfidenceAfter),
	)
	return nil
}

// ProcessProfileRefreshJob recomputes a user's hourly productivity profile
// from recent sessions and writes it through to the cache.
func (o *ScheduleOptimizer) ProcessProfileRefreshJob(ctx context.Context, job *queue.Job) error {
	if o.profileStore == nil {
		return nil
	}

	sessions, err := o.sessionRepo.GetRecentByUserID(ctx, job.UserID, o.sessionLimit)
	if err != nil {
		return fmt.Errorf("failed to get focus sessions: %w", err)
	}

	profile := scheduler.HourlyProductivity(sessions)
	if err := o.profileStore.Set(ctx, job.UserID, profile); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	o.logger.Info("profile_refreshed",
		zap.String("user_id", job.UserID.String()),
		zap.Int("session_count", len(sessions)),
		zap.Int("hours_with_data", len(profile)),
	)
	return nil
}

// ProcessJob processes a job based on its type
func (o *ScheduleOptimizer) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	// Respect NotBefore: ack and let the delayed exchange redeliver
	if !job.ShouldProcess() {
		o.logger.Info("job_not_ready",
			zap.String("job_id", job.ID.String()),
			zap.Timep("not_before", job.NotBefore),
		)
		if ackErr := msg.Ack(); ackErr != nil {
			o.logger.Warn("job_ack_failed", zap.Error(ackErr))
		}
		return nil
	}

	switch job.Type {
	case queue.JobTypeScheduleOptimization:
		if err := o.ProcessScheduleOptimizationJob(ctx, job); err != nil {
			return o.handleJobError(msg, job, err, "schedule optimization")
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	case queue.JobTypeProfileRefresh:
		if err := o.ProcessProfileRefreshJob(ctx, job); err != nil {
			// Profile refreshes are non-critical; a failure goes to the DLQ
			if nackErr := msg.Nack(false); nackErr != nil {
				o.logger.Warn("job_nack_failed", zap.Error(nackErr))
			}
			return fmt.Errorf("profile refresh failed: %w", err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack profile refresh job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil {
			o.logger.Warn("job_nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError retries a failed job until its retry budget runs out, then
// sends it to the DLQ.
func (o *ScheduleOptimizer) handleJobError(msg queue.MessageInterface, job *queue.Job, err error, jobType string) error {
	if job.CanRetry() {
		job.IncrementRetry()
		o.logger.Warn("job_retry",
			zap.String("job_type", jobType),
			zap.String("job_id", job.ID.String()),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		if nackErr := msg.Nack(true); nackErr != nil {
			o.logger.Warn("job_nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	o.logger.Error("job_exhausted_retries",
		zap.String("job_type", jobType),
		zap.String("job_id", job.ID.String()),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		o.logger.Warn("job_nack_failed", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
