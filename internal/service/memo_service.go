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

type MemoService struct {
	memos  repository.MemoRepository
	logger *zap.Logger
}

func NewMemoService(memos repository.MemoRepository, logger *zap.Logger) *MemoService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MemoService{
		memos:  memos,
		logger: logger,
	}
}

func (s *MemoService) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	if memo == nil {
		return nil, domain.ErrValidation
	}
	if err := memo.Validate(); err != nil {
		return nil, err
	}

	memo.ID = uuid.NewString()
	if err := s.memos.Create(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *MemoService) List(ctx context.Context) ([]domain.Memo, error) {
	return s.memos.List(ctx)
}

func (s *MemoService) Update(ctx context.Context, id string, content string) (*domain.Memo, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return s.memos.Update(ctx, id, content)
}

func (s *MemoService) Delete(ctx context.Context, id string) error {
	return s.memos.Delete(ctx, id)
}
