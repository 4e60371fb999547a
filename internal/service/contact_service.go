package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"go.uber.org/zap"
)

type ContactService struct {
	contacts repository.ContactRepository
	logger   *zap.Logger
}

func NewContactService(contacts repository.ContactRepository, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ContactService{
		contacts: contacts,
		logger:   logger,
	}
}

func (s *ContactService) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, domain.ErrValidation
	}

	if contact.Priority == "" {
		contact.Priority = domain.PriorityMedium
	}
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	contact.ID = uuid.NewString()
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}

func (s *ContactService) List(ctx context.Context, params repository.ContactListParams) ([]domain.Contact, error) {
	return s.contacts.List(ctx, params)
}

func (s *ContactService) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	updates := map[string]any{}

	if patch.CompanyName != nil {
		if strings.TrimSpace(*patch.CompanyName) == "" {
			return nil, fmt.Errorf("%w: company name is required", domain.ErrValidation)
		}
		updates["company_name"] = *patch.CompanyName
	}
	if patch.ContactDate != nil {
		updates["contact_date"] = *patch.ContactDate
	}
	if patch.ContactPerson != nil {
		updates["contact_person"] = *patch.ContactPerson
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, domain.ErrValidation
		}
		updates["priority"] = *patch.Priority
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	if len(updates) == 0 {
		return s.contacts.GetByID(ctx, id)
	}

	return s.contacts.Update(ctx, id, updates)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}
