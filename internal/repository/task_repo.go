package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"gorm.io/gorm"
)

// TaskListParams filters and orders the task list endpoint.
type TaskListParams struct {
	Status   *domain.Status
	Priority *domain.Priority
	SortBy   string
	SortAsc  bool
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, params TaskListParams) ([]domain.Task, error)
	Update(ctx context.Context, id string, updates map[string]any) (*domain.Task, error)
	Delete(ctx context.Context, id string) error

	// DueToday returns incomplete tasks whose due date falls on the given
	// day, ordered by the priority column.
	DueToday(ctx context.Context, now time.Time) ([]domain.Task, error)

	// IncompleteToday returns incomplete tasks due on the given day or
	// carrying no due date at all. Undated tasks are admitted into every
	// evening run; that filter is inherited behavior and kept as-is.
	IncompleteToday(ctx context.Context, now time.Time) ([]domain.Task, error)
}

var allowedTaskSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"priority":   true,
	"title":      true,
}

type GormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) *GormTaskRepo {
	return &GormTaskRepo{db: db}
}

func (r *GormTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	model := taskModelFromDomain(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if t != nil {
		*t = *taskModelToDomain(model)
	}
	return nil
}

func (r *GormTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var model TaskModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return taskModelToDomain(&model), nil
}

func (r *GormTaskRepo) List(ctx context.Context, params TaskListParams) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Model(&TaskModel{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}

	sortBy := params.SortBy
	if !allowedTaskSortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if params.SortAsc {
		direction = "ASC"
	}

	var models []TaskModel
	err := query.
		Order(sortBy + " " + direction).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *taskModelToDomain(&models[i]))
	}

	return tasks, nil
}

func (r *GormTaskRepo) Update(ctx context.Context, id string, updates map[string]any) (*domain.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *GormTaskRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&TaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormTaskRepo) DueToday(ctx context.Context, now time.Time) ([]domain.Task, error) {
	start, end := dayBounds(now)

	var models []TaskModel
	err := r.db.WithContext(ctx).
		Where("status <> ?", domain.StatusCompleted).
		Where("due_date >= ? AND due_date <= ?", start, end).
		Order("priority ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *taskModelToDomain(&models[i]))
	}

	return tasks, nil
}

func (r *GormTaskRepo) IncompleteToday(ctx context.Context, now time.Time) ([]domain.Task, error) {
	start, end := dayBounds(now)

	var models []TaskModel
	err := r.db.WithContext(ctx).
		Where("status <> ?", domain.StatusCompleted).
		Where("(due_date >= ? AND due_date <= ?) OR due_date IS NULL", start, end).
		Order("priority ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *taskModelToDomain(&models[i]))
	}

	return tasks, nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
