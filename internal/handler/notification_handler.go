package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/service"
)

type ChannelService interface {
	AuthorizationURL() (string, error)
	CompleteAuthorization(ctx context.Context, code string) error
	Settings(ctx context.Context) (service.ChannelSettings, error)
	UpdateSettings(ctx context.Context, patch domain.ChannelSettingsPatch) (service.ChannelSettings, error)
}

type TestSender interface {
	TestRun(ctx context.Context) (service.RunResult, error)
	RecentDeliveries(ctx context.Context, limit int) ([]domain.DeliveryLog, error)
}

// NotificationHandler exposes the Kakao connection endpoints. The OAuth
// callback is browser-facing and always answers with a redirect back to the
// web app, never with a JSON error.
type NotificationHandler struct {
	channels ChannelService
	sender   TestSender
	appURL   string
}

func NewNotificationHandler(channels ChannelService, sender TestSender, appURL string) (*NotificationHandler, error) {
	if channels == nil {
		return nil, fmt.Errorf("channel service is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("test sender is required")
	}
	return &NotificationHandler{
		channels: channels,
		sender:   sender,
		appURL:   appURL,
	}, nil
}

func RegisterNotificationRoutes(router fiber.Router, channels ChannelService, sender TestSender, appURL string) error {
	h, err := NewNotificationHandler(channels, sender, appURL)
	if err != nil {
		return err
	}

	router.Get("/auth/kakao", h.GetAuthURL)
	router.Get("/auth/kakao/callback", h.Callback)
	router.Get("/notifications/settings", h.GetSettings)
	router.Patch("/notifications/settings", h.UpdateSettings)
	router.Post("/notifications/test", h.SendTest)
	router.Get("/notifications/logs", h.ListDeliveries)

	return nil
}

type settingsRequest struct {
	MorningTime *string `json:"morningTime"`
	EveningTime *string `json:"eveningTime"`
	Active      *bool   `json:"active"`
}

type settingsResponse struct {
	Connected   bool   `json:"connected"`
	Active      bool   `json:"active"`
	MorningTime string `json:"morningTime"`
	EveningTime string `json:"eveningTime"`
}

type deliveryLogResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Succeeded    bool      `json:"succeeded"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toDeliveryLogResponse(l *domain.DeliveryLog) deliveryLogResponse {
	return deliveryLogResponse{
		ID:           l.ID,
		Kind:         l.Kind.String(),
		Succeeded:    l.Succeeded,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

func (h *NotificationHandler) GetAuthURL(c *fiber.Ctx) error {
	url, err := h.channels.AuthorizationURL()
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(fiber.Map{
		"authUrl": url,
	}))
}

func (h *NotificationHandler) Callback(c *fiber.Ctx) error {
	if reason := c.Query("error"); reason != "" {
		return h.redirectWithError(c, reason)
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return h.redirectWithError(c, "missing_code")
	}

	if err := h.channels.CompleteAuthorization(c.Context(), code); err != nil {
		return h.redirectWithError(c, "exchange_failed")
	}

	return c.Redirect(h.appURL+"?kakao_connected=true", fiber.StatusFound)
}

func (h *NotificationHandler) redirectWithError(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.appURL+"?kakao_error="+reason, fiber.StatusFound)
}

func (h *NotificationHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.channels.Settings(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toSettingsResponse(settings)))
}

func (h *NotificationHandler) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	settings, err := h.channels.UpdateSettings(c.Context(), domain.ChannelSettingsPatch{
		MorningTime: req.MorningTime,
		EveningTime: req.EveningTime,
		Active:      req.Active,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toSettingsResponse(settings)))
}

func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	result, err := h.sender.TestRun(c.Context())
	if err != nil {
		return toHTTPError(err)
	}
	if !result.Configured {
		return fiber.NewError(fiber.StatusBadRequest, "kakao is not connected")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": result.Sent,
		"message": result.Message,
	})
}

func (h *NotificationHandler) ListDeliveries(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	logs, err := h.sender.RecentDeliveries(c.Context(), limit)
	if err != nil {
		return toHTTPError(err)
	}

	out := make([]deliveryLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toDeliveryLogResponse(&logs[i]))
	}

	return c.Status(fiber.StatusOK).JSON(envelope(out))
}

func toSettingsResponse(s service.ChannelSettings) settingsResponse {
	return settingsResponse{
		Connected:   s.Connected,
		Active:      s.Active,
		MorningTime: s.MorningTime,
		EveningTime: s.EveningTime,
	}
}
