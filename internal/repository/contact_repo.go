package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"gorm.io/gorm"
)

// ContactListParams filters the contact list endpoint.
type ContactListParams struct {
	From          *time.Time
	To            *time.Time
	ShowCompleted bool
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, params ContactListParams) ([]domain.Contact, error)
	Update(ctx context.Context, id string, updates map[string]any) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

type GormContactRepo struct {
	db *gorm.DB
}

func NewGormContactRepo(db *gorm.DB) *GormContactRepo {
	return &GormContactRepo{db: db}
}

func (r *GormContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	model := contactModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if c != nil {
		*c = *contactModelToDomain(model)
	}
	return nil
}

func (r *GormContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	var model ContactModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contactModelToDomain(&model), nil
}

func (r *GormContactRepo) List(ctx context.Context, params ContactListParams) ([]domain.Contact, error) {
	query := r.db.WithContext(ctx).Model(&ContactModel{})

	if params.From != nil {
		query = query.Where("contact_date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("contact_date <= ?", *params.To)
	}
	if !params.ShowCompleted {
		query = query.Where("completed = ?", false)
	}

	var models []ContactModel
	err := query.
		Order("contact_date ASC").
		Order("priority DESC").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.Contact, 0, len(models))
	for i := range models {
		contacts = append(contacts, *contactModelToDomain(&models[i]))
	}

	return contacts, nil
}

func (r *GormContactRepo) Update(ctx context.Context, id string, updates map[string]any) (*domain.Contact, error) {
	result := r.db.WithContext(ctx).
		Model(&ContactModel{}).
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

func (r *GormContactRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&ContactModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
