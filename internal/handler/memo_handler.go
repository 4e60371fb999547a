package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
)

type MemoService interface {
	Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error)
	List(ctx context.Context) ([]domain.Memo, error)
	Update(ctx context.Context, id string, content string) (*domain.Memo, error)
	Delete(ctx context.Context, id string) error
}

type MemoHandler struct {
	service MemoService
}

func NewMemoHandler(service MemoService) (*MemoHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("memo service is required")
	}
	return &MemoHandler{service: service}, nil
}

func RegisterMemoRoutes(router fiber.Router, service MemoService) error {
	h, err := NewMemoHandler(service)
	if err != nil {
		return err
	}

	router.Get("/memos", h.ListMemos)
	router.Post("/memos", h.CreateMemo)
	router.Patch("/memos/:id", h.UpdateMemo)
	router.Delete("/memos/:id", h.DeleteMemo)

	return nil
}

type memoRequest struct {
	Content string `json:"content"`
}

type memoResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *MemoHandler) CreateMemo(c *fiber.Ctx) error {
	var req memoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	memo, err := h.service.Create(c.Context(), &domain.Memo{Content: req.Content})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(envelope(toMemoResponse(memo)))
}

func (h *MemoHandler) ListMemos(c *fiber.Ctx) error {
	memos, err := h.service.List(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	out := make([]memoResponse, 0, len(memos))
	for i := range memos {
		out = append(out, toMemoResponse(&memos[i]))
	}

	return c.Status(fiber.StatusOK).JSON(envelope(out))
}

func (h *MemoHandler) UpdateMemo(c *fiber.Ctx) error {
	var req memoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id := strings.TrimSpace(c.Params("id"))
	memo, err := h.service.Update(c.Context(), id, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toMemoResponse(memo)))
}

func (h *MemoHandler) DeleteMemo(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.Delete(c.Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func toMemoResponse(m *domain.Memo) memoResponse {
	return memoResponse{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
