package handler

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/service"
)

type ReminderRunner interface {
	MorningRun(ctx context.Context) (service.RunResult, error)
	EveningRun(ctx context.Context) (service.RunResult, error)
}

// CronHandler serves the two scheduler-triggered endpoints. Callers must
// present the shared cron secret as a bearer token.
type CronHandler struct {
	runner ReminderRunner
	secret string
}

func NewCronHandler(runner ReminderRunner, secret string) (*CronHandler, error) {
	if runner == nil {
		return nil, fmt.Errorf("reminder runner is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("cron secret is required")
	}
	return &CronHandler{runner: runner, secret: secret}, nil
}

func RegisterCronRoutes(router fiber.Router, runner ReminderRunner, secret string) error {
	h, err := NewCronHandler(runner, secret)
	if err != nil {
		return err
	}

	router.Get("/cron/morning", h.Morning)
	router.Get("/cron/evening", h.Evening)

	return nil
}

func (h *CronHandler) Morning(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.runner.MorningRun(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": morningMessage(result),
	})
}

func (h *CronHandler) Evening(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.runner.EveningRun(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"message":         eveningMessage(result),
		"incompleteCount": result.PendingCount,
	})
}

func (h *CronHandler) authorized(c *fiber.Ctx) bool {
	header := c.Get(fiber.HeaderAuthorization)
	want := "Bearer " + h.secret
	return subtle.ConstantTimeCompare([]byte(header), []byte(want)) == 1
}

func morningMessage(result service.RunResult) string {
	switch {
	case !result.Configured:
		return "kakao is not connected, nothing sent"
	case result.Sent:
		return "morning reminder sent"
	default:
		return "morning reminder failed"
	}
}

func eveningMessage(result service.RunResult) string {
	switch {
	case !result.Configured:
		return "kakao is not connected, nothing sent"
	case result.Sent:
		return "evening reminder sent"
	default:
		return "evening reminder failed"
	}
}
