package repository

import (
	"context"
	"errors"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"gorm.io/gorm"
)

type MemoRepository interface {
	Create(ctx context.Context, m *domain.Memo) error
	GetByID(ctx context.Context, id string) (*domain.Memo, error)
	List(ctx context.Context) ([]domain.Memo, error)
	Update(ctx context.Context, id string, content string) (*domain.Memo, error)
	Delete(ctx context.Context, id string) error
}

type GormMemoRepo struct {
	db *gorm.DB
}

func NewGormMemoRepo(db *gorm.DB) *GormMemoRepo {
	return &GormMemoRepo{db: db}
}

func (r *GormMemoRepo) Create(ctx context.Context, m *domain.Memo) error {
	model := memoModelFromDomain(m)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if m != nil {
		*m = *memoModelToDomain(model)
	}
	return nil
}

func (r *GormMemoRepo) GetByID(ctx context.Context, id string) (*domain.Memo, error) {
	var model MemoModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return memoModelToDomain(&model), nil
}

func (r *GormMemoRepo) List(ctx context.Context) ([]domain.Memo, error) {
	var models []MemoModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	memos := make([]domain.Memo, 0, len(models))
	for i := range models {
		memos = append(memos, *memoModelToDomain(&models[i]))
	}

	return memos, nil
}

func (r *GormMemoRepo) Update(ctx context.Context, id string, content string) (*domain.Memo, error) {
	result := r.db.WithContext(ctx).
		Model(&MemoModel{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *GormMemoRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&MemoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
