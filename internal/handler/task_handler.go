package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, params repository.TaskListParams) ([]domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) (*TaskHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("task service is required")
	}
	return &TaskHandler{service: service}, nil
}

func RegisterTaskRoutes(router fiber.Router, service TaskService) error {
	h, err := NewTaskHandler(service)
	if err != nil {
		return err
	}

	router.Get("/tasks", h.ListTasks)
	router.Post("/tasks", h.CreateTask)
	router.Get("/tasks/stats", h.GetStats)
	router.Get("/tasks/:id", h.GetTask)
	router.Patch("/tasks/:id", h.UpdateTask)
	router.Delete("/tasks/:id", h.DeleteTask)

	return nil
}

type createTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"dueDate"`
	ReminderTime *string `json:"reminderTime"`
	Category     *string `json:"category"`
}

type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	DueDate      *string `json:"dueDate"`
	ReminderTime *string `json:"reminderTime"`
	Category     *string `json:"category"`
	Reminded     *bool   `json:"reminded"`
}

type taskResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ReminderTime *string    `json:"reminderTime,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Reminded     bool       `json:"reminded"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	task := domain.Task{
		Title:        req.Title,
		Description:  req.Description,
		ReminderTime: req.ReminderTime,
		Category:     req.Category,
	}

	if req.Status != "" {
		status, err := domain.ParseStatusFromString(req.Status)
		if err != nil {
			return toHTTPError(err)
		}
		task.Status = status
	}
	if req.Priority != "" {
		priority, err := domain.ParsePriorityFromString(req.Priority)
		if err != nil {
			return toHTTPError(err)
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return toHTTPError(err)
		}
		task.DueDate = &due
	}

	created, err := h.service.Create(c.Context(), &task)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(envelope(toTaskResponse(created)))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	task, err := h.service.Get(c.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toTaskResponse(task)))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	params := repository.TaskListParams{
		SortBy:  c.Query("sortBy", "created_at"),
		SortAsc: c.Query("order") == "asc",
	}

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatusFromString(raw)
		if err != nil {
			return toHTTPError(err)
		}
		params.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := domain.ParsePriorityFromString(raw)
		if err != nil {
			return toHTTPError(err)
		}
		params.Priority = &priority
	}

	tasks, err := h.service.List(c.Context(), params)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toTaskResponses(tasks)))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// A null dueDate clears the date; an absent key leaves it untouched.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	patch := domain.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		ReminderTime: req.ReminderTime,
		Category:     req.Category,
		Reminded:     req.Reminded,
	}

	if req.Status != nil {
		status, err := domain.ParseStatusFromString(*req.Status)
		if err != nil {
			return toHTTPError(err)
		}
		patch.Status = &status
	}
	if req.Priority != nil {
		priority, err := domain.ParsePriorityFromString(*req.Priority)
		if err != nil {
			return toHTTPError(err)
		}
		patch.Priority = &priority
	}
	if _, present := raw["dueDate"]; present {
		if req.DueDate == nil {
			patch.ClearDueDate = true
		} else {
			due, err := parseDate(*req.DueDate)
			if err != nil {
				return toHTTPError(err)
			}
			patch.DueDate = &due
		}
	}

	id := strings.TrimSpace(c.Params("id"))
	task, err := h.service.Update(c.Context(), id, patch)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toTaskResponse(task)))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.Delete(c.Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *TaskHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(stats))
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, value)
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status.String(),
		Priority:     t.Priority.String(),
		DueDate:      t.DueDate,
		ReminderTime: t.ReminderTime,
		Category:     t.Category,
		Reminded:     t.Reminded,
		CompletedAt:  t.CompletedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}
