package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/middleware"
	"github.com/flowday/flowday-api/internal/models"
	"github.com/flowday/flowday-api/internal/queue"
	"github.com/flowday/flowday-api/internal/scheduler"
	"github.com/flowday/flowday-api/internal/validation"
)

const (
	// MaxSessionNotesLength is the maximum length for session notes
	MaxSessionNotesLength = 2000
	// DefaultSessionListLimit is the default number of recent sessions returned
	DefaultSessionListLimit = 50
	// MaxSessionListLimit caps the recent-session list size
	MaxSessionListLimit = 500
	// optimizationDebounce delays the post-session optimization job so a burst
	// of stopped sessions produces one meaningful run, not many
	optimizationDebounce = 5 * time.Minute
)

// ProfileProvider is the read-through productivity profile cache.
// Satisfied by cache.ProfileCache.
type ProfileProvider interface {
	GetOrCompute(ctx context.Context, userID uuid.UUID, compute func(ctx context.Context) (map[int]float64, error)) (map[int]float64, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// SessionHandler handles focus session requests
type SessionHandler struct {
	sessionRepo  database.FocusSessionRepositoryInterface
	jobQueue     queue.JobQueue
	profileCache ProfileProvider
	sessionLimit int
	logger       *zap.Logger
}

// NewSessionHandler creates a new session handler. The job queue and profile
// cache are optional; without them stopping a session just records the data.
func NewSessionHandler(sessionRepo database.FocusSessionRepositoryInterface, jobQueue queue.JobQueue, profileCache ProfileProvider, sessionLimit int, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		sessionRepo:  sessionRepo,
		jobQueue:     jobQueue,
		profileCache: profileCache,
		sessionLimit: sessionLimit,
		logger:       logger,
	}
}

// RegisterRoutes registers session routes on the given router
// The router should already have the /sessions prefix
func (h *SessionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/start", h.StartSession).Methods("POST")
	r.HandleFunc("/profile", h.GetProfile).Methods("GET")
	r.HandleFunc("/{id}/stop", h.StopSession).Methods("POST")
	r.HandleFunc("", h.ListSessions).Methods("GET")
}

// StartSessionRequest represents a start session request
type StartSessionRequest struct {
	TaskID *uuid.UUID `json:"task_id,omitempty"`
	Notes  string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// StopSessionRequest represents a stop session request
type StopSessionRequest struct {
	FocusQuality *int `json:"focus_quality,omitempty"`
}

// StartSession begins a new focus session
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req StartSessionRequest
	if r.ContentLength > 0 {
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&req); err != nil {
			if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
				respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
				return
			}
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
			return
		}
	}

	notes := validation.SanitizeText(req.Notes)
	if len(notes) > MaxSessionNotesLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Notes exceed maximum length of %d characters", MaxSessionNotesLength))
		return
	}

	session := &models.FocusSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		TaskID:    req.TaskID,
		StartTime: time.Now().UTC(),
		Notes:     notes,
	}

	if err := h.sessionRepo.Create(r.Context(), session); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to start session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// StopSession ends a running focus session and records its focus quality.
// A quality rating makes the session usable by the optimizer, so stopping
// with one kicks off a profile refresh and a delayed schedule optimization.
func (h *SessionHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid session ID")
		return
	}

	ctx := r.Context()
	session, err := h.sessionRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Session not found")
		return
	}
	if session.UserID != user.ID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Session does not belong to user")
		return
	}

	var req StopSessionRequest
	if r.ContentLength > 0 {
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&req); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
			return
		}
	}

	if req.FocusQuality != nil {
		if err := validation.ValidateFocusQuality(*req.FocusQuality); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	endTime := time.Now().UTC()
	if err := h.sessionRepo.Stop(ctx, id, endTime, req.FocusQuality); err != nil {
		respondJSONError(w, http.StatusConflict, "Conflict", "Session not found or already stopped")
		return
	}

	stopped, err := h.sessionRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load stopped session")
		return
	}

	if req.FocusQuality != nil {
		h.enqueueFollowupJobs(ctx, user.ID)
	}

	respondJSON(w, http.StatusOK, stopped)
}

// enqueueFollowupJobs schedules a profile refresh and a debounced schedule
// optimization after new focus-quality data lands. Failures are non-fatal:
// the nightly scheduler covers any dropped jobs.
func (h *SessionHandler) enqueueFollowupJobs(ctx context.Context, userID uuid.UUID) {
	if h.profileCache != nil {
		if err := h.profileCache.Invalidate(ctx, userID); err != nil {
			h.logger.Warn("profile_invalidate_failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	if h.jobQueue == nil {
		return
	}

	refreshJob := queue.NewJob(queue.JobTypeProfileRefresh, userID, nil)
	if err := h.jobQueue.Enqueue(ctx, refreshJob); err != nil {
		h.logger.Warn("profile_refresh_enqueue_failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	now := time.Now().UTC()
	planDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	notBefore := now.Add(optimizationDebounce)
	notAfter := now.Add(24 * time.Hour)

	optimizeJob := queue.NewJob(queue.JobTypeScheduleOptimization, userID, &planDate)
	optimizeJob.NotBefore = &notBefore
	optimizeJob.NotAfter = &notAfter
	if err := h.jobQueue.Enqueue(ctx, optimizeJob); err != nil {
		h.logger.Warn("optimization_enqueue_failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// ListSessions lists the user's recent completed sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	limit := DefaultSessionListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			if parsed > MaxSessionListLimit {
				limit = MaxSessionListLimit
			} else {
				limit = parsed
			}
		}
	}

	sessions, err := h.sessionRepo.GetRecentByUserID(r.Context(), user.ID, limit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve sessions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"limit":    limit,
	})
}

// GetProfile returns the user's hourly productivity profile, read through the
// cache when one is configured.
func (h *SessionHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	compute := func(ctx context.Context) (map[int]float64, error) {
		sessions, err := h.sessionRepo.GetRecentByUserID(ctx, user.ID, h.sessionLimit)
		if err != nil {
			return nil, err
		}
		return scheduler.HourlyProductivity(sessions), nil
	}

	var profile map[int]float64
	var err error
	if h.profileCache != nil {
		profile, err = h.profileCache.GetOrCompute(ctx, user.ID, compute)
	} else {
		profile, err = compute(ctx)
	}
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute productivity profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"hourly_productivity": profile,
		"session_limit":       h.sessionLimit,
	})
}
