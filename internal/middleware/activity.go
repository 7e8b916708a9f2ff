package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/logger"
)

// ActivityTracking records user API activity. The nightly optimizer skips
// users paused for inactivity; any authenticated request unpauses them.
func ActivityTracking(activityRepo *database.UserActivityRepository, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r)
			if user != nil {
				ctx := r.Context()

				if err := activityRepo.UpdateLastInteraction(ctx, user.ID); err != nil {
					// Activity tracking failures never fail the request
					log.Warn("activity_update_failed",
						zap.String("error", logger.SanitizeError(err)),
					)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ActivityTracker pauses schedule optimization for inactive users on a timer.
type ActivityTracker struct {
	activityRepo  *database.UserActivityRepository
	checkInterval time.Duration
	log           *zap.Logger
}

// NewActivityTracker creates a new activity tracker
func NewActivityTracker(activityRepo *database.UserActivityRepository, log *zap.Logger) *ActivityTracker {
	return &ActivityTracker{
		activityRepo:  activityRepo,
		checkInterval: 1 * time.Hour,
		log:           log,
	}
}

// Start runs the inactivity check loop until ctx is cancelled
func (at *ActivityTracker) Start(ctx context.Context) {
	ticker := time.NewTicker(at.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			usersToPause, err := at.activityRepo.GetUsersNeedingOptimizationPause(ctx)
			if err != nil {
				at.log.Warn("inactivity_check_failed",
					zap.String("error", logger.SanitizeError(err)),
				)
				continue
			}

			for _, userID := range usersToPause {
				if err := at.activityRepo.SetOptimizationPaused(ctx, userID, true); err != nil {
					at.log.Warn("optimization_pause_failed",
						zap.String("user_id", logger.SanitizeID(userID.String())),
						zap.String("error", logger.SanitizeError(err)),
					)
				}
			}
		}
	}
}
