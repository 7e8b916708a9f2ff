package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/middleware"
	"github.com/flowday/flowday-api/internal/models"
	"github.com/flowday/flowday-api/internal/validation"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskRepo database.TaskRepositoryInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskRepo database.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// RegisterRoutes registers task routes on the given router
// The router should already have the /tasks prefix (e.g., from apiRouter.PathPrefix("/tasks"))
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/{id}/complete", h.CompleteTask).Methods("POST")
}

const (
	// MaxTaskTitleLength is the maximum length for task titles
	MaxTaskTitleLength = 500
	// MaxTaskContextLength is the maximum length for the task context label
	MaxTaskContextLength = 100
	// DefaultPageSize is the default page size for pagination
	DefaultPageSize = 100
	// MaxPageSize is the maximum page size for pagination
	MaxPageSize = 500
)

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title             string `json:"title" validate:"required,min=1,max=500"`
	Priority          string `json:"priority" validate:"omitempty,task_priority"`
	Complexity        *int   `json:"complexity,omitempty" validate:"omitempty,min=1,max=5"`
	EstimatedDuration *int   `json:"estimated_duration,omitempty" validate:"omitempty,min=1,max=1440"`
	Context           string `json:"context,omitempty" validate:"omitempty,max=100"`
	EnergyLevel       string `json:"energy_level,omitempty" validate:"omitempty,energy_level"`
}

// UpdateTaskRequest represents an update task request
type UpdateTaskRequest struct {
	Title             *string `json:"title,omitempty"`
	Priority          *string `json:"priority,omitempty"`
	Complexity        *int    `json:"complexity,omitempty"`
	EstimatedDuration *int    `json:"estimated_duration,omitempty"`
	Context           *string `json:"context,omitempty"`
	EnergyLevel       *string `json:"energy_level,omitempty"`
}

// ListTasksResponse represents the paginated response for listing tasks
type ListTasksResponse struct {
	Tasks      []*models.Task `json:"tasks"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// ListTasks lists tasks for the authenticated user with pagination
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := DefaultPageSize
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 {
			if parsed > MaxPageSize {
				pageSize = MaxPageSize
			} else {
				pageSize = parsed
			}
		}
	}

	var priority *models.TaskPriority
	if p := r.URL.Query().Get("priority"); p != "" {
		if err := validation.ValidateTaskPriority(p); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		pEnum := models.TaskPriority(p)
		priority = &pEnum
	}

	var completed *bool
	if c := r.URL.Query().Get("completed"); c != "" {
		parsed, err := strconv.ParseBool(c)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid completed filter")
			return
		}
		completed = &parsed
	}

	tasks, total, err := h.taskRepo.GetByUserIDPaginated(ctx, user.ID, priority, completed, page, pageSize)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve tasks")
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	response := ListTasksResponse{
		Tasks:      tasks,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	respondJSON(w, http.StatusOK, response)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateTaskRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
		return
	}
	if len(req.Title) > MaxTaskTitleLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Title exceeds maximum length of %d characters", MaxTaskTitleLength))
		return
	}

	task := &models.Task{
		ID:                uuid.New(),
		UserID:            user.ID,
		Title:             req.Title,
		Priority:          models.TaskPriorityMedium,
		Complexity:        3,
		EstimatedDuration: req.EstimatedDuration,
		Context:           validation.SanitizeText(req.Context),
		EnergyLevel:       models.EnergyLevelMedium,
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}
	if req.Complexity != nil {
		task.Complexity = *req.Complexity
	}
	if req.EnergyLevel != "" {
		task.EnergyLevel = models.EnergyLevel(req.EnergyLevel)
	}

	if err := h.taskRepo.Create(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// GetTask retrieves a task by ID
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user.ID)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user.ID)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if req.Title != nil {
		sanitized := validation.SanitizeText(*req.Title)
		if sanitized == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title cannot be empty after sanitization")
			return
		}
		if len(sanitized) > MaxTaskTitleLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Title exceeds maximum length of %d characters", MaxTaskTitleLength))
			return
		}
		task.Title = sanitized
	}
	if req.Priority != nil {
		if err := validation.ValidateTaskPriority(*req.Priority); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.Complexity != nil {
		if *req.Complexity < 1 || *req.Complexity > 5 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Complexity must be between 1 and 5")
			return
		}
		task.Complexity = *req.Complexity
	}
	if req.EstimatedDuration != nil {
		if *req.EstimatedDuration < 1 || *req.EstimatedDuration > 1440 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Estimated duration must be between 1 and 1440 minutes")
			return
		}
		task.EstimatedDuration = req.EstimatedDuration
	}
	if req.Context != nil {
		sanitized := validation.SanitizeText(*req.Context)
		if len(sanitized) > MaxTaskContextLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Context exceeds maximum length of %d characters", MaxTaskContextLength))
			return
		}
		task.Context = sanitized
	}
	if req.EnergyLevel != nil {
		switch models.EnergyLevel(*req.EnergyLevel) {
		case models.EnergyLevelHigh, models.EnergyLevelMedium, models.EnergyLevelLow:
			task.EnergyLevel = models.EnergyLevel(*req.EnergyLevel)
		default:
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("invalid energy level: %s", *req.EnergyLevel))
			return
		}
	}

	if err := h.taskRepo.Update(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user.ID)
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(r.Context(), task.ID); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask marks a task as completed
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user.ID)
	if !ok {
		return
	}

	if err := h.taskRepo.Complete(r.Context(), task.ID); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to complete task")
		return
	}

	completed, err := h.taskRepo.GetByID(r.Context(), task.ID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load completed task")
		return
	}

	respondJSON(w, http.StatusOK, completed)
}

// loadOwnedTask parses the path ID, loads the task, and enforces ownership.
// On failure it writes the error response and returns ok=false.
func (h *TaskHandler) loadOwnedTask(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Task, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return nil, false
	}

	task, err := h.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return nil, false
	}

	if task.UserID != userID {
		respondJSONError(w, http.StatusForbidden, "Forbidden", "Task does not belong to user")
		return nil, false
	}

	return task, true
}
