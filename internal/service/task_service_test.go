package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
)

func TestTaskCreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	var created *domain.Task
	repo := &fakeTaskRepo{
		createFn: func(ctx context.Context, task *domain.Task) error {
			created = task
			return nil
		},
	}

	svc := NewTaskService(repo, nil)
	task, err := svc.Create(context.Background(), &domain.Task{Title: "Submit report"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("repository create should be called")
	}
	if task.ID == "" {
		t.Fatal("id should be generated")
	}
	if task.Status != domain.StatusPending {
		t.Fatalf("status = %s, want pending", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("priority = %s, want medium", task.Priority)
	}
}

func TestTaskCreateRejectsBlankTitle(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(&fakeTaskRepo{}, nil)

	_, err := svc.Create(context.Background(), &domain.Task{Title: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestTaskGetRecomputesOverdue(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &fakeTaskRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{
				ID:       id,
				Title:    "Submit report",
				Status:   domain.StatusPending,
				Priority: domain.PriorityHigh,
				DueDate:  &due,
			}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	task, err := svc.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != domain.StatusOverdue {
		t.Fatalf("status = %s, want overdue", task.Status)
	}
}

func TestTaskGetCompletedNeverOverdue(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &fakeTaskRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{
				ID:       id,
				Title:    "Submit report",
				Status:   domain.StatusCompleted,
				Priority: domain.PriorityHigh,
				DueDate:  &due,
			}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	task, err := svc.Get(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if task.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", task.Status)
	}
}

func TestTaskUpdateCompletionStampsTimestamp(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	repo := &fakeTaskRepo{
		updateFn: func(ctx context.Context, id string, updates map[string]any) (*domain.Task, error) {
			captured = updates
			return &domain.Task{ID: id, Title: "Submit report", Status: domain.StatusCompleted, Priority: domain.PriorityHigh}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	status := domain.StatusCompleted
	_, err := svc.Update(context.Background(), "t-1", domain.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stamp, ok := captured["completed_at"].(time.Time)
	if !ok {
		t.Fatalf("completed_at = %v, want a timestamp", captured["completed_at"])
	}
	if !stamp.Equal(fixedClock().UTC()) {
		t.Fatalf("completed_at = %v, want the service clock", stamp)
	}
}

func TestTaskUpdateReopeningClearsTimestamp(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	repo := &fakeTaskRepo{
		updateFn: func(ctx context.Context, id string, updates map[string]any) (*domain.Task, error) {
			captured = updates
			return &domain.Task{ID: id, Title: "Submit report", Status: domain.StatusPending, Priority: domain.PriorityHigh}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	status := domain.StatusPending
	_, err := svc.Update(context.Background(), "t-1", domain.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	value, present := captured["completed_at"]
	if !present {
		t.Fatal("completed_at should be explicitly cleared")
	}
	if value != nil {
		t.Fatalf("completed_at = %v, want nil", value)
	}
}

func TestTaskUpdateClearDueDate(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	repo := &fakeTaskRepo{
		updateFn: func(ctx context.Context, id string, updates map[string]any) (*domain.Task, error) {
			captured = updates
			return &domain.Task{ID: id, Title: "Submit report", Status: domain.StatusPending, Priority: domain.PriorityHigh}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	_, err := svc.Update(context.Background(), "t-1", domain.TaskPatch{ClearDueDate: true})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if value, present := captured["due_date"]; !present || value != nil {
		t.Fatalf("due_date = %v (present=%t), want explicit nil", value, present)
	}
}

func TestTaskUpdateEmptyPatchReadsBack(t *testing.T) {
	t.Parallel()

	updateCalled := false
	repo := &fakeTaskRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, Title: "Submit report", Status: domain.StatusPending, Priority: domain.PriorityHigh}, nil
		},
		updateFn: func(ctx context.Context, id string, updates map[string]any) (*domain.Task, error) {
			updateCalled = true
			return nil, domain.ErrNotFound
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = fixedClock

	task, err := svc.Update(context.Background(), "t-1", domain.TaskPatch{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if task == nil || task.ID != "t-1" {
		t.Fatalf("task = %+v, want the stored row", task)
	}
	if updateCalled {
		t.Fatal("an empty patch should not hit the update path")
	}
}

func TestTaskStats(t *testing.T) {
	t.Parallel()

	now := fixedClock()
	today := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	repo := &fakeTaskRepo{
		listFn: func(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error) {
			return []domain.Task{
				{Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow, DueDate: &today},
				{Title: "b", Status: domain.StatusInProgress, Priority: domain.PriorityHigh},
				{Title: "c", Status: domain.StatusCompleted, Priority: domain.PriorityLow, CompletedAt: &today},
				{Title: "d", Status: domain.StatusCompleted, Priority: domain.PriorityLow, CompletedAt: &yesterday},
				{Title: "e", Status: domain.StatusPending, Priority: domain.PriorityUrgent, DueDate: &yesterday},
			}, nil
		},
	}

	svc := NewTaskService(repo, nil)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	want := domain.DashboardStats{
		Total:          5,
		Pending:        1,
		InProgress:     1,
		Completed:      2,
		Overdue:        1,
		CompletedToday: 1,
		DueToday:       1,
	}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
}
