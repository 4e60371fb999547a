package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"github.com/kyungmin-dev/taskbell/internal/transport"
	"go.uber.org/zap"
)

type stubTaskService struct {
	createFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	getFn    func(ctx context.Context, id string) (*domain.Task, error)
	listFn   func(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error)
	updateFn func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	deleteFn func(ctx context.Context, id string) error
	statsFn  func(ctx context.Context) (domain.DashboardStats, error)
}

func (s *stubTaskService) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if s.createFn != nil {
		return s.createFn(ctx, task)
	}
	return task, nil
}

func (s *stubTaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubTaskService) List(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, nil
}

func (s *stubTaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, patch)
	}
	return nil, domain.ErrNotFound
}

func (s *stubTaskService) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubTaskService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return domain.DashboardStats{}, nil
}

func newTaskTestApp(t *testing.T, svc TaskService) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(zap.NewNop()),
	})

	if err := RegisterTaskRoutes(app, svc); err != nil {
		t.Fatalf("RegisterTaskRoutes() error = %v", err)
	}

	return app
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	svc := &stubTaskService{
		createFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			if task.Title != "Submit report" {
				t.Fatalf("title = %q", task.Title)
			}
			if task.DueDate == nil {
				t.Fatal("due date should be parsed")
			}
			task.ID = "t-created"
			task.Status = domain.StatusPending
			task.Priority = domain.PriorityHigh
			return task, nil
		},
	}

	app := newTaskTestApp(t, svc)
	body := `{"title":"Submit report","priority":"high","dueDate":"2026-08-31"}`
	resp, respBody := performRequest(t, app, http.MethodPost, "/tasks", body, nil)

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", resp.StatusCode, string(respBody))
	}

	var payload struct {
		Data taskResponse `json:"data"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if payload.Data.ID != "t-created" {
		t.Fatalf("id = %s, want t-created", payload.Data.ID)
	}
}

func TestCreateTaskRejectsBadPriority(t *testing.T) {
	t.Parallel()

	app := newTaskTestApp(t, &stubTaskService{})
	resp, _ := performRequest(t, app, http.MethodPost, "/tasks", `{"title":"x","priority":"asap"}`, nil)

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListTasksParsesFilters(t *testing.T) {
	t.Parallel()

	var captured repository.TaskListParams
	svc := &stubTaskService{
		listFn: func(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error) {
			captured = params
			return nil, nil
		},
	}

	app := newTaskTestApp(t, svc)
	resp, _ := performRequest(t, app, http.MethodGet, "/tasks?status=pending&priority=high&sortBy=due_date&order=asc", "", nil)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if captured.Status == nil || *captured.Status != domain.StatusPending {
		t.Fatalf("status filter = %v, want pending", captured.Status)
	}
	if captured.Priority == nil || *captured.Priority != domain.PriorityHigh {
		t.Fatalf("priority filter = %v, want high", captured.Priority)
	}
	if captured.SortBy != "due_date" || !captured.SortAsc {
		t.Fatalf("sort = %s asc=%t", captured.SortBy, captured.SortAsc)
	}
}

func TestUpdateTaskNullDueDateClears(t *testing.T) {
	t.Parallel()

	var captured domain.TaskPatch
	svc := &stubTaskService{
		updateFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
			captured = patch
			return &domain.Task{ID: id, Title: "x", Status: domain.StatusPending, Priority: domain.PriorityLow}, nil
		},
	}

	app := newTaskTestApp(t, svc)
	resp, _ := performRequest(t, app, http.MethodPatch, "/tasks/t-1", `{"dueDate":null}`, nil)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !captured.ClearDueDate {
		t.Fatal("null dueDate should clear the date")
	}
}

func TestUpdateTaskAbsentDueDateUntouched(t *testing.T) {
	t.Parallel()

	var captured domain.TaskPatch
	svc := &stubTaskService{
		updateFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
			captured = patch
			return &domain.Task{ID: id, Title: "x", Status: domain.StatusPending, Priority: domain.PriorityLow}, nil
		},
	}

	app := newTaskTestApp(t, svc)
	resp, _ := performRequest(t, app, http.MethodPatch, "/tasks/t-1", `{"title":"renamed"}`, nil)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if captured.ClearDueDate || captured.DueDate != nil {
		t.Fatal("absent dueDate must leave the date untouched")
	}
	if captured.Title == nil || *captured.Title != "renamed" {
		t.Fatalf("title = %v, want renamed", captured.Title)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	t.Parallel()

	app := newTaskTestApp(t, &stubTaskService{})
	resp, _ := performRequest(t, app, http.MethodGet, "/tasks/missing", "", nil)

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	svc := &stubTaskService{
		statsFn: func(ctx context.Context) (domain.DashboardStats, error) {
			return domain.DashboardStats{Total: 7, Pending: 2, DueToday: 1}, nil
		},
	}

	app := newTaskTestApp(t, svc)
	resp, body := performRequest(t, app, http.MethodGet, "/tasks/stats", "", nil)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Data domain.DashboardStats `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if payload.Data.Total != 7 || payload.Data.DueToday != 1 {
		t.Fatalf("data = %+v", payload.Data)
	}
}
