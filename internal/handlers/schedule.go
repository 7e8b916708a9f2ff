package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/middleware"
	"github.com/flowday/flowday-api/internal/models"
	"github.com/flowday/flowday-api/internal/scheduler"
	"github.com/flowday/flowday-api/internal/services/ai"
	"github.com/flowday/flowday-api/internal/validation"
)

// ScheduleHandler handles smart scheduling requests
type ScheduleHandler struct {
	engine       *scheduler.Engine
	taskRepo     database.TaskRepositoryInterface
	planRepo     database.DayPlanRepositoryInterface
	sessionRepo  database.FocusSessionRepositoryInterface
	narrator     ai.Narrator
	sessionLimit int
	logger       *zap.Logger
}

// NewScheduleHandler creates a new schedule handler. The narrator is
// optional; without one optimize responses carry only the deterministic
// reasoning strings.
func NewScheduleHandler(
	engine *scheduler.Engine,
	taskRepo database.TaskRepositoryInterface,
	planRepo database.DayPlanRepositoryInterface,
	sessionRepo database.FocusSessionRepositoryInterface,
	narrator ai.Narrator,
	sessionLimit int,
	logger *zap.Logger,
) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{
		engine:       engine,
		taskRepo:     taskRepo,
		planRepo:     planRepo,
		sessionRepo:  sessionRepo,
		narrator:     narrator,
		sessionLimit: sessionLimit,
		logger:       logger,
	}
}

// RegisterRoutes registers schedule routes on the given router
// The router should already have the /schedule prefix
func (h *ScheduleHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate", h.GenerateSchedule).Methods("POST")
	r.HandleFunc("/suggest", h.SuggestSchedule).Methods("POST")
	r.HandleFunc("/optimize", h.OptimizeSchedule).Methods("POST")
	r.HandleFunc("", h.GetSchedule).Methods("GET")
}

// GenerateScheduleRequest represents a generate schedule request
type GenerateScheduleRequest struct {
	Date         string                     `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	WorkingHours models.WorkingHours        `json:"working_hours"`
	Preferences  models.SchedulePreferences `json:"preferences"`
}

// GenerateScheduleResponse represents a generated schedule
type GenerateScheduleResponse struct {
	Schedule []models.TimeBlock   `json:"schedule"`
	Stats    models.ScheduleStats `json:"stats"`
}

// SuggestScheduleRequest represents a block suggestion request
type SuggestScheduleRequest struct {
	BlockID         uuid.UUID                 `json:"block_id"`
	Suggestions     scheduler.BlockSuggestion `json:"suggestions"`
	CurrentSchedule []models.TimeBlock        `json:"current_schedule"`
}

// SuggestScheduleResponse represents the result of applying a suggestion
type SuggestScheduleResponse struct {
	UpdatedSchedule []models.TimeBlock      `json:"updated_schedule"`
	Message         string                  `json:"message"`
	Changes         []models.ScheduleChange `json:"changes"`
}

// OptimizeScheduleRequest represents an optimize schedule request
type OptimizeScheduleRequest struct {
	Date         string             `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Schedule     []models.TimeBlock `json:"schedule,omitempty"`
	UserFeedback struct {
		Preferences string `json:"preferences,omitempty"`
	} `json:"user_feedback"`
}

// ScheduleImprovements summarizes what history-based optimization changed
type ScheduleImprovements struct {
	ProductivityIncrease string `json:"productivity_increase"`
	BetterTimeSlots      int    `json:"better_time_slots"`
	EnergyAlignment      string `json:"energy_alignment"`
}

// OptimizeScheduleResponse represents an optimized schedule
type OptimizeScheduleResponse struct {
	OptimizedSchedule []models.TimeBlock   `json:"optimized_schedule"`
	Improvements      ScheduleImprovements `json:"improvements"`
	Reasoning         []string             `json:"reasoning"`
	Summary           string               `json:"summary,omitempty"`
}

// GenerateSchedule builds a fresh day plan from the user's incomplete tasks
// and persists it as the plan of record for that day.
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req GenerateScheduleRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.ValidateWorkingHours(req.WorkingHours); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if req.Preferences.Style == "" {
		req.Preferences.Style = models.PlanStyleBalanced
	}
	switch req.Preferences.Style {
	case models.PlanStyleBalanced, models.PlanStyleIntense, models.PlanStyleRelaxed:
	default:
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("invalid plan style: %s", req.Preferences.Style))
		return
	}

	day, err := parsePlanDate(req.Date)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	tasks, err := h.taskRepo.GetIncompleteByUserID(ctx, user.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	blocks, stats := h.engine.GenerateDayPlan(tasks, day, req.WorkingHours, req.Preferences)

	plan := &models.DayPlan{
		ID:     uuid.New(),
		UserID: user.ID,
		Date:   day,
		Style:  req.Preferences.Style,
		Blocks: blocks,
		Stats:  stats,
	}
	if err := h.planRepo.Upsert(ctx, plan); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save day plan")
		return
	}

	h.logger.Info("schedule_generated",
		zap.String("user_id", user.ID.String()),
		zap.Time("plan_date", day),
		zap.Int("task_count", len(tasks)),
		zap.Int("block_count", stats.TotalBlocks),
		zap.Int("efficiency", stats.Efficiency),
	)

	respondJSON(w, http.StatusOK, GenerateScheduleResponse{
		Schedule: blocks,
		Stats:    stats,
	})
}

// SuggestSchedule applies a user edit to one block of a schedule snapshot,
// persists the result if a stored plan exists for that day, and reports the
// diff against the submitted snapshot.
func (h *ScheduleHandler) SuggestSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req SuggestScheduleRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if req.BlockID == uuid.Nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "block_id is required")
		return
	}
	if len(req.CurrentSchedule) == 0 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "current_schedule is required")
		return
	}
	if req.Suggestions.NewDuration != nil && (*req.Suggestions.NewDuration < 1 || *req.Suggestions.NewDuration > 1440) {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "new_duration must be between 1 and 1440 minutes")
		return
	}
	if req.Suggestions.NewPriority != nil {
		if err := validation.ValidateTaskPriority(string(*req.Suggestions.NewPriority)); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	updated := scheduler.ApplySuggestion(req.CurrentSchedule, req.BlockID, req.Suggestions)
	changes := scheduler.DiffSchedules(req.CurrentSchedule, updated)

	message := "No changes applied"
	if len(changes) > 0 {
		message = "Schedule updated with your suggestion"
	}

	if req.Suggestions.Feedback != "" {
		h.logger.Info("block_feedback",
			zap.String("user_id", user.ID.String()),
			zap.String("block_id", req.BlockID.String()),
			zap.String("feedback", validation.SanitizeText(req.Suggestions.Feedback)),
		)
	}

	// Persist against the stored plan for the block's day, when one exists
	ctx := r.Context()
	day := civilDay(req.CurrentSchedule[0].StartTime)
	plan, err := h.planRepo.GetByUserAndDate(ctx, user.ID, day)
	if err == nil && plan != nil {
		if err := h.planRepo.UpdateBlocks(ctx, plan.ID, updated, plan.Stats); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save updated plan")
			return
		}
	}

	respondJSON(w, http.StatusOK, SuggestScheduleResponse{
		UpdatedSchedule: updated,
		Message:         message,
		Changes:         changes,
	})
}

// OptimizeSchedule re-annotates a schedule against the user's focus history.
// The schedule may be submitted inline; otherwise the stored plan for the
// requested day is used.
func (h *ScheduleHandler) OptimizeSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req OptimizeScheduleRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	day, err := parsePlanDate(req.Date)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	blocks := req.Schedule
	var plan *models.DayPlan
	if len(blocks) == 0 {
		plan, err = h.planRepo.GetByUserAndDate(ctx, user.ID, day)
		if err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load day plan")
			return
		}
		if plan == nil {
			respondJSONError(w, http.StatusNotFound, "Not Found", "No day plan found for the requested date")
			return
		}
		blocks = plan.Blocks
	} else {
		day = civilDay(blocks[0].StartTime)
		plan, _ = h.planRepo.GetByUserAndDate(ctx, user.ID, day)
	}

	sessions, err := h.sessionRepo.GetRecentByUserID(ctx, user.ID, h.sessionLimit)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve focus sessions")
		return
	}

	optimized, report := scheduler.OptimizeWithHistory(blocks, sessions)

	if plan != nil {
		if err := h.planRepo.UpdateBlocks(ctx, plan.ID, optimized, plan.Stats); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save optimized plan")
			return
		}
	}

	response := OptimizeScheduleResponse{
		OptimizedSchedule: optimized,
		Improvements:      improvementsFromReport(report),
		Reasoning:         report.Reasoning,
	}
	if response.Reasoning == nil {
		response.Reasoning = []string{}
	}

	// Narration is best effort: a model failure falls back to the
	// deterministic reasoning already in the response
	if h.narrator != nil && report.BetterTimeSlots+report.Deweighted > 0 {
		summary, narrateErr := h.narrator.NarrateOptimization(ctx, &report)
		if narrateErr != nil {
			h.logger.Warn("optimization_narration_failed",
				zap.String("user_id", user.ID.String()),
				zap.Error(narrateErr),
			)
		} else {
			response.Summary = summary
		}
	}

	h.logger.Info("schedule_optimized",
		zap.String("user_id", user.ID.String()),
		zap.Int("better_time_slots", report.BetterTimeSlots),
		zap.Int("deweighted", report.Deweighted),
	)

	respondJSON(w, http.StatusOK, response)
}

// GetSchedule fetches the stored day plan for a date
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	day, err := parsePlanDate(r.URL.Query().Get("date"))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	plan, err := h.planRepo.GetByUserAndDate(r.Context(), user.ID, day)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load day plan")
		return
	}
	if plan == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "No day plan found for the requested date")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// improvementsFromReport derives the user-facing improvement stats from the
// optimizer's report. The productivity estimate weighs freed-up strong hours
// heavier than deweighted weak ones.
func improvementsFromReport(report scheduler.OptimizationReport) ScheduleImprovements {
	estimate := report.BetterTimeSlots*5 + report.Deweighted*3

	alignment := "unchanged"
	if report.Deweighted > 0 {
		alignment = "improved"
	}

	return ScheduleImprovements{
		ProductivityIncrease: fmt.Sprintf("+%d%%", estimate),
		BetterTimeSlots:      report.BetterTimeSlots,
		EnergyAlignment:      alignment,
	}
}

// parsePlanDate parses a YYYY-MM-DD plan date, defaulting to today (UTC).
func parsePlanDate(raw string) (time.Time, error) {
	if raw == "" {
		return civilDay(time.Now().UTC()), nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", raw)
	}
	return day, nil
}

// civilDay truncates a timestamp to midnight of its day
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
