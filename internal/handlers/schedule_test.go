package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowday/flowday-api/internal/database"
	"github.com/flowday/flowday-api/internal/middleware"
	"github.com/flowday/flowday-api/internal/models"
	"github.com/flowday/flowday-api/internal/queue"
	"github.com/flowday/flowday-api/internal/scheduler"
)

// mockTaskRepo is a mock implementation of TaskRepositoryInterface
type mockTaskRepo struct {
	createFunc                func(ctx context.Context, task *models.Task) error
	getByIDFunc               func(ctx context.Context, id uuid.UUID) (*models.Task, error)
	getIncompleteByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	getByUserIDPaginatedFunc  func(ctx context.Context, userID uuid.UUID, priority *models.TaskPriority, completed *bool, page, pageSize int) ([]*models.Task, int, error)
	updateFunc                func(ctx context.Context, task *models.Task) error
	completeFunc              func(ctx context.Context, id uuid.UUID) error
	deleteFunc                func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *mockTaskRepo) GetIncompleteByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	if m.getIncompleteByUserIDFunc != nil {
		return m.getIncompleteByUserIDFunc(ctx, userID)
	}
	return []*models.Task{}, nil
}

func (m *mockTaskRepo) GetByUserIDPaginated(ctx context.Context, userID uuid.UUID, priority *models.TaskPriority, completed *bool, page, pageSize int) ([]*models.Task, int, error) {
	if m.getByUserIDPaginatedFunc != nil {
		return m.getByUserIDPaginatedFunc(ctx, userID, priority, completed, page, pageSize)
	}
	return []*models.Task{}, 0, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Complete(ctx context.Context, id uuid.UUID) error {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

var _ database.TaskRepositoryInterface = (*mockTaskRepo)(nil)

// mockPlanRepo is a mock implementation of DayPlanRepositoryInterface
type mockPlanRepo struct {
	upsertFunc           func(ctx context.Context, plan *models.DayPlan) error
	getByUserAndDateFunc func(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error)
	updateBlocksFunc     func(ctx context.Context, planID uuid.UUID, blocks []models.TimeBlock, stats models.ScheduleStats) error
}

func (m *mockPlanRepo) Upsert(ctx context.Context, plan *models.DayPlan) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error) {
	if m.getByUserAndDateFunc != nil {
		return m.getByUserAndDateFunc(ctx, userID, date)
	}
	return nil, nil
}

func (m *mockPlanRepo) UpdateBlocks(ctx context.Context, planID uuid.UUID, blocks []models.TimeBlock, stats models.ScheduleStats) error {
	if m.updateBlocksFunc != nil {
		return m.updateBlocksFunc(ctx, planID, blocks, stats)
	}
	return nil
}

var _ database.DayPlanRepositoryInterface = (*mockPlanRepo)(nil)

// mockSessionRepo is a mock implementation of FocusSessionRepositoryInterface
type mockSessionRepo struct {
	createFunc            func(ctx context.Context, session *models.FocusSession) error
	stopFunc              func(ctx context.Context, id uuid.UUID, endTime time.Time, quality *int) error
	getByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.FocusSession, error)
	getRecentByUserIDFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.FocusSession) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) Stop(ctx context.Context, id uuid.UUID, endTime time.Time, quality *int) error {
	if m.stopFunc != nil {
		return m.stopFunc(ctx, id, endTime, quality)
	}
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FocusSession, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *mockSessionRepo) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error) {
	if m.getRecentByUserIDFunc != nil {
		return m.getRecentByUserIDFunc(ctx, userID, limit)
	}
	return []*models.FocusSession{}, nil
}

var _ database.FocusSessionRepositoryInterface = (*mockSessionRepo)(nil)

// mockJobQueue is a mock implementation of queue.JobQueue
type mockJobQueue struct {
	enqueued []*queue.Job
}

func (m *mockJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	m.enqueued = append(m.enqueued, job)
	return nil
}

func (m *mockJobQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, errors.New("not implemented")
}

func (m *mockJobQueue) Close() error {
	return nil
}

func (m *mockJobQueue) HealthCheck(ctx context.Context) error {
	return nil
}

var _ queue.JobQueue = (*mockJobQueue)(nil)

// mockProfileCache is a mock implementation of ProfileProvider
type mockProfileCache struct {
	cached      map[int]float64
	invalidated int
}

func (m *mockProfileCache) GetOrCompute(ctx context.Context, userID uuid.UUID, compute func(ctx context.Context) (map[int]float64, error)) (map[int]float64, error) {
	if m.cached != nil {
		return m.cached, nil
	}
	return compute(ctx)
}

func (m *mockProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	m.invalidated++
	return nil
}

var _ ProfileProvider = (*mockProfileCache)(nil)

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Email: "ana@flowday.io"}
}

func authedRequest(method, target string, body []byte, user *models.User) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if user != nil {
		req = req.WithContext(middleware.SetUserInContext(req.Context(), user))
	}
	return req
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success response, got: %s", w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}

func qualityPtr(q int) *int {
	return &q
}

func newTestScheduleHandler(taskRepo *mockTaskRepo, planRepo *mockPlanRepo, sessionRepo *mockSessionRepo) *ScheduleHandler {
	return NewScheduleHandler(scheduler.NewEngine(), taskRepo, planRepo, sessionRepo, nil, 100, nil)
}

func TestGenerateSchedule(t *testing.T) {
	t.Parallel()

	user := testUser()

	t.Run("unauthorized without user", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.GenerateSchedule(w, authedRequest("POST", "/api/v1/schedule/generate", []byte(`{}`), nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects inverted working hours", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		body := []byte(`{"working_hours":{"start":17,"end":9}}`)
		w := httptest.NewRecorder()
		h.GenerateSchedule(w, authedRequest("POST", "/api/v1/schedule/generate", body, user))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects unknown style", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		body := []byte(`{"working_hours":{"start":9,"end":17},"preferences":{"style":"chaotic"}}`)
		w := httptest.NewRecorder()
		h.GenerateSchedule(w, authedRequest("POST", "/api/v1/schedule/generate", body, user))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("generates and persists a plan", func(t *testing.T) {
		t.Parallel()

		tasks := []*models.Task{
			{ID: uuid.New(), UserID: user.ID, Title: "Quarterly report", Priority: models.TaskPriorityHigh, Complexity: 4, EnergyLevel: models.EnergyLevelHigh},
			{ID: uuid.New(), UserID: user.ID, Title: "Inbox triage", Priority: models.TaskPriorityLow, Complexity: 1, EnergyLevel: models.EnergyLevelLow},
		}
		taskRepo := &mockTaskRepo{
			getIncompleteByUserIDFunc: func(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
				return tasks, nil
			},
		}
		var savedPlan *models.DayPlan
		planRepo := &mockPlanRepo{
			upsertFunc: func(ctx context.Context, plan *models.DayPlan) error {
				savedPlan = plan
				return nil
			},
		}

		h := newTestScheduleHandler(taskRepo, planRepo, &mockSessionRepo{})
		body := []byte(`{"working_hours":{"start":9,"end":17},"preferences":{"style":"balanced"},"date":"2026-08-28"}`)
		w := httptest.NewRecorder()
		h.GenerateSchedule(w, authedRequest("POST", "/api/v1/schedule/generate", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp GenerateScheduleResponse
		decodeData(t, w, &resp)

		if len(resp.Schedule) == 0 {
			t.Fatal("expected generated blocks")
		}
		if resp.Stats.TotalBlocks != len(resp.Schedule) {
			t.Errorf("stats block count %d does not match schedule length %d", resp.Stats.TotalBlocks, len(resp.Schedule))
		}
		for _, b := range resp.Schedule {
			if b.Duration > 90 && b.BlockType != models.BlockTypeBreak {
				t.Errorf("block %q exceeds 90 minute ceiling: %d", b.Title, b.Duration)
			}
		}

		if savedPlan == nil {
			t.Fatal("expected plan to be persisted")
		}
		if savedPlan.UserID != user.ID {
			t.Errorf("plan saved for wrong user: %s", savedPlan.UserID)
		}
		if !savedPlan.Date.Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected plan date: %s", savedPlan.Date)
		}
	})

	t.Run("empty task list yields empty schedule", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		body := []byte(`{"working_hours":{"start":9,"end":17}}`)
		w := httptest.NewRecorder()
		h.GenerateSchedule(w, authedRequest("POST", "/api/v1/schedule/generate", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp GenerateScheduleResponse
		decodeData(t, w, &resp)
		if len(resp.Schedule) != 0 {
			t.Errorf("expected empty schedule, got %d blocks", len(resp.Schedule))
		}
		if resp.Stats.Efficiency != 0 {
			t.Errorf("expected 0 efficiency with no tasks, got %d", resp.Stats.Efficiency)
		}
	})
}

func TestSuggestSchedule(t *testing.T) {
	t.Parallel()

	user := testUser()
	blockID := uuid.New()

	baseBlocks := []models.TimeBlock{
		{
			ID:        blockID,
			Title:     "Quarterly report",
			StartTime: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
			BlockType: models.BlockTypeDeepWork,
			Duration:  60,
		},
	}

	t.Run("applies duration suggestion and reports change", func(t *testing.T) {
		t.Parallel()

		req := SuggestScheduleRequest{
			BlockID:         blockID,
			Suggestions:     scheduler.BlockSuggestion{NewDuration: qualityPtr(45)},
			CurrentSchedule: baseBlocks,
		}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.SuggestSchedule(w, authedRequest("POST", "/api/v1/schedule/suggest", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp SuggestScheduleResponse
		decodeData(t, w, &resp)

		if resp.UpdatedSchedule[0].Duration != 45 {
			t.Errorf("expected duration 45, got %d", resp.UpdatedSchedule[0].Duration)
		}
		if !resp.UpdatedSchedule[0].UserModified {
			t.Error("expected block to be marked user modified")
		}
		if len(resp.Changes) != 1 || resp.Changes[0].Type != models.ScheduleChangeDurationChanged {
			t.Errorf("expected one duration_changed entry, got %+v", resp.Changes)
		}
	})

	t.Run("unknown block id is a no-op", func(t *testing.T) {
		t.Parallel()

		req := SuggestScheduleRequest{
			BlockID:         uuid.New(),
			Suggestions:     scheduler.BlockSuggestion{NewDuration: qualityPtr(45)},
			CurrentSchedule: baseBlocks,
		}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.SuggestSchedule(w, authedRequest("POST", "/api/v1/schedule/suggest", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp SuggestScheduleResponse
		decodeData(t, w, &resp)
		if len(resp.Changes) != 0 {
			t.Errorf("expected no changes, got %+v", resp.Changes)
		}
		if resp.Message != "No changes applied" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
	})

	t.Run("persists to stored plan when one exists", func(t *testing.T) {
		t.Parallel()

		planID := uuid.New()
		var savedBlocks []models.TimeBlock
		planRepo := &mockPlanRepo{
			getByUserAndDateFunc: func(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error) {
				return &models.DayPlan{ID: planID, UserID: userID, Date: date, Blocks: baseBlocks}, nil
			},
			updateBlocksFunc: func(ctx context.Context, gotPlanID uuid.UUID, blocks []models.TimeBlock, stats models.ScheduleStats) error {
				if gotPlanID != planID {
					t.Errorf("expected plan ID %s, got %s", planID, gotPlanID)
				}
				savedBlocks = blocks
				return nil
			},
		}

		req := SuggestScheduleRequest{
			BlockID:         blockID,
			Suggestions:     scheduler.BlockSuggestion{NewDuration: qualityPtr(30)},
			CurrentSchedule: baseBlocks,
		}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, planRepo, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.SuggestSchedule(w, authedRequest("POST", "/api/v1/schedule/suggest", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if len(savedBlocks) != 1 || savedBlocks[0].Duration != 30 {
			t.Errorf("expected persisted block with duration 30, got %+v", savedBlocks)
		}
	})

	t.Run("rejects missing current schedule", func(t *testing.T) {
		t.Parallel()

		req := SuggestScheduleRequest{BlockID: blockID}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.SuggestSchedule(w, authedRequest("POST", "/api/v1/schedule/suggest", body, user))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestOptimizeSchedule(t *testing.T) {
	t.Parallel()

	user := testUser()

	lowFocusSessions := func() []*models.FocusSession {
		sessions := make([]*models.FocusSession, 0, 4)
		for i := 0; i < 4; i++ {
			start := time.Date(2026, 8, 20+i, 9, 0, 0, 0, time.UTC)
			end := start.Add(45 * time.Minute)
			sessions = append(sessions, &models.FocusSession{
				ID:           uuid.New(),
				UserID:       user.ID,
				StartTime:    start,
				EndTime:      &end,
				FocusQuality: qualityPtr(1),
			})
		}
		return sessions
	}

	inlineSchedule := []models.TimeBlock{
		{
			ID:             uuid.New(),
			Title:          "Quarterly report",
			StartTime:      time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
			BlockType:      models.BlockTypeDeepWork,
			EnergyRequired: models.EnergyLevelHigh,
			Duration:       90,
			Confidence:     0.9,
		},
	}

	t.Run("deweights high energy block in weak hour", func(t *testing.T) {
		t.Parallel()

		sessionRepo := &mockSessionRepo{
			getRecentByUserIDFunc: func(ctx context.Context, userID uuid.UUID, limit int) ([]*models.FocusSession, error) {
				return lowFocusSessions(), nil
			},
		}

		req := OptimizeScheduleRequest{Schedule: inlineSchedule}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, sessionRepo)
		w := httptest.NewRecorder()
		h.OptimizeSchedule(w, authedRequest("POST", "/api/v1/schedule/optimize", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp OptimizeScheduleResponse
		decodeData(t, w, &resp)

		if resp.OptimizedSchedule[0].Suggestion != scheduler.SuggestionReschedule {
			t.Errorf("expected reschedule suggestion, got %q", resp.OptimizedSchedule[0].Suggestion)
		}
		if resp.OptimizedSchedule[0].Confidence >= 0.9 {
			t.Errorf("expected deweighted confidence, got %f", resp.OptimizedSchedule[0].Confidence)
		}
		if resp.Improvements.EnergyAlignment != "improved" {
			t.Errorf("expected improved energy alignment, got %q", resp.Improvements.EnergyAlignment)
		}
		if len(resp.Reasoning) == 0 {
			t.Error("expected reasoning entries")
		}
	})

	t.Run("no history leaves schedule unchanged", func(t *testing.T) {
		t.Parallel()

		req := OptimizeScheduleRequest{Schedule: inlineSchedule}
		body, _ := json.Marshal(req)

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.OptimizeSchedule(w, authedRequest("POST", "/api/v1/schedule/optimize", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp OptimizeScheduleResponse
		decodeData(t, w, &resp)

		if resp.OptimizedSchedule[0].Suggestion != "" {
			t.Errorf("expected no suggestion, got %q", resp.OptimizedSchedule[0].Suggestion)
		}
		if resp.Improvements.BetterTimeSlots != 0 {
			t.Errorf("expected no better time slots, got %d", resp.Improvements.BetterTimeSlots)
		}
		if resp.Improvements.ProductivityIncrease != "+0%" {
			t.Errorf("unexpected productivity increase: %q", resp.Improvements.ProductivityIncrease)
		}
	})

	t.Run("falls back to stored plan", func(t *testing.T) {
		t.Parallel()

		planID := uuid.New()
		planRepo := &mockPlanRepo{
			getByUserAndDateFunc: func(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error) {
				return &models.DayPlan{ID: planID, UserID: userID, Date: date, Blocks: inlineSchedule}, nil
			},
		}

		body := []byte(`{"date":"2026-08-28"}`)
		h := newTestScheduleHandler(&mockTaskRepo{}, planRepo, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.OptimizeSchedule(w, authedRequest("POST", "/api/v1/schedule/optimize", body, user))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp OptimizeScheduleResponse
		decodeData(t, w, &resp)
		if len(resp.OptimizedSchedule) != 1 {
			t.Errorf("expected stored plan blocks in response, got %d", len(resp.OptimizedSchedule))
		}
	})

	t.Run("404 without schedule or stored plan", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.OptimizeSchedule(w, authedRequest("POST", "/api/v1/schedule/optimize", []byte(`{}`), user))

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestGetSchedule(t *testing.T) {
	t.Parallel()

	user := testUser()

	t.Run("returns stored plan", func(t *testing.T) {
		t.Parallel()

		planRepo := &mockPlanRepo{
			getByUserAndDateFunc: func(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DayPlan, error) {
				return &models.DayPlan{ID: uuid.New(), UserID: userID, Date: date}, nil
			},
		}

		h := newTestScheduleHandler(&mockTaskRepo{}, planRepo, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.GetSchedule(w, authedRequest("GET", "/api/v1/schedule?date=2026-08-28", nil, user))

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("404 when no plan stored", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.GetSchedule(w, authedRequest("GET", "/api/v1/schedule?date=2026-08-28", nil, user))

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()

		h := newTestScheduleHandler(&mockTaskRepo{}, &mockPlanRepo{}, &mockSessionRepo{})
		w := httptest.NewRecorder()
		h.GetSchedule(w, authedRequest("GET", "/api/v1/schedule?date=tomorrow", nil, user))

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
