package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"go.uber.org/zap"
)

// TaskService implements task CRUD and the dashboard aggregates. Overdue is
// a derived state: it is recomputed against the clock on every read instead
// of being flipped by a background job.
type TaskService struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(tasks repository.TaskRepository, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TaskService{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrValidation
	}

	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.ID = uuid.NewString()
	if task.Status == domain.StatusCompleted && task.CompletedAt == nil {
		now := s.now().UTC()
		task.CompletedAt = &now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.applyOverdue(task)
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.applyOverdue(task)
	return task, nil
}

func (s *TaskService) List(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.applyOverdue(&tasks[i])
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	updates := map[string]any{}

	if patch.Title != nil {
		probe := domain.Task{Title: *patch.Title, Status: domain.StatusPending, Priority: domain.PriorityMedium}
		if err := probe.Validate(); err != nil {
			return nil, err
		}
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, domain.ErrValidation
		}
		updates["status"] = *patch.Status
		if *patch.Status == domain.StatusCompleted {
			updates["completed_at"] = s.now().UTC()
		} else {
			updates["completed_at"] = nil
		}
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, domain.ErrValidation
		}
		updates["priority"] = *patch.Priority
	}
	if patch.ClearDueDate {
		updates["due_date"] = nil
	} else if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.ReminderTime != nil {
		updates["reminder_time"] = *patch.ReminderTime
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Reminded != nil {
		updates["reminded"] = *patch.Reminded
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	task, err := s.tasks.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.applyOverdue(task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// Stats walks the full task set once and derives the dashboard counters.
func (s *TaskService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskListParams{})
	if err != nil {
		return domain.DashboardStats{}, err
	}

	now := s.now()
	dayStart, dayEnd := dayRange(now)

	stats := domain.DashboardStats{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		s.applyOverdue(t)

		switch t.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusOverdue:
			stats.Overdue++
		}

		if t.Status == domain.StatusCompleted && t.CompletedAt != nil &&
			!t.CompletedAt.Before(dayStart) && t.CompletedAt.Before(dayEnd) {
			stats.CompletedToday++
		}
		if t.Status != domain.StatusCompleted && t.DueDate != nil &&
			!t.DueDate.Before(dayStart) && t.DueDate.Before(dayEnd) {
			stats.DueToday++
		}
	}

	return stats, nil
}

func (s *TaskService) applyOverdue(t *domain.Task) {
	if t != nil && t.IsOverdue(s.now()) {
		t.Status = domain.StatusOverdue
	}
}

func dayRange(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}
