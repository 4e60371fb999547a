package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kyungmin-dev/taskbell/internal/domain"
	"github.com/kyungmin-dev/taskbell/internal/repository"
)

type ContactService interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, params repository.ContactListParams) ([]domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactHandler struct {
	service ContactService
}

func NewContactHandler(service ContactService) (*ContactHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("contact service is required")
	}
	return &ContactHandler{service: service}, nil
}

func RegisterContactRoutes(router fiber.Router, service ContactService) error {
	h, err := NewContactHandler(service)
	if err != nil {
		return err
	}

	router.Get("/contacts", h.ListContacts)
	router.Post("/contacts", h.CreateContact)
	router.Get("/contacts/:id", h.GetContact)
	router.Patch("/contacts/:id", h.UpdateContact)
	router.Delete("/contacts/:id", h.DeleteContact)

	return nil
}

type createContactRequest struct {
	CompanyName   string  `json:"companyName"`
	ContactDate   string  `json:"contactDate"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Content       *string `json:"content"`
	Priority      string  `json:"priority"`
}

type updateContactRequest struct {
	CompanyName   *string `json:"companyName"`
	ContactDate   *string `json:"contactDate"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Content       *string `json:"content"`
	Priority      *string `json:"priority"`
	Completed     *bool   `json:"completed"`
}

type contactResponse struct {
	ID            string    `json:"id"`
	CompanyName   string    `json:"companyName"`
	ContactDate   time.Time `json:"contactDate"`
	ContactPerson *string   `json:"contactPerson,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Priority      string    `json:"priority"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	var req createContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	contact := domain.Contact{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Content:       req.Content,
	}

	if req.ContactDate != "" {
		date, err := parseDate(req.ContactDate)
		if err != nil {
			return toHTTPError(err)
		}
		contact.ContactDate = date
	}
	if req.Priority != "" {
		priority, err := domain.ParsePriorityFromString(req.Priority)
		if err != nil {
			return toHTTPError(err)
		}
		contact.Priority = priority
	}

	created, err := h.service.Create(c.Context(), &contact)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(envelope(toContactResponse(created)))
}

func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	contact, err := h.service.Get(c.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toContactResponse(contact)))
}

func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	params := repository.ContactListParams{
		ShowCompleted: c.QueryBool("showCompleted", false),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return toHTTPError(err)
		}
		params.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return toHTTPError(err)
		}
		params.To = &to
	}

	contacts, err := h.service.List(c.Context(), params)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toContactResponses(contacts)))
}

func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	var req updateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	patch := domain.ContactPatch{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Content:       req.Content,
		Completed:     req.Completed,
	}

	if req.ContactDate != nil {
		date, err := parseDate(*req.ContactDate)
		if err != nil {
			return toHTTPError(err)
		}
		patch.ContactDate = &date
	}
	if req.Priority != nil {
		priority, err := domain.ParsePriorityFromString(*req.Priority)
		if err != nil {
			return toHTTPError(err)
		}
		patch.Priority = &priority
	}

	id := strings.TrimSpace(c.Params("id"))
	contact, err := h.service.Update(c.Context(), id, patch)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(envelope(toContactResponse(contact)))
}

func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := h.service.Delete(c.Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func toContactResponse(contact *domain.Contact) contactResponse {
	return contactResponse{
		ID:            contact.ID,
		CompanyName:   contact.CompanyName,
		ContactDate:   contact.ContactDate,
		ContactPerson: contact.ContactPerson,
		Phone:         contact.Phone,
		Content:       contact.Content,
		Priority:      contact.Priority.String(),
		Completed:     contact.Completed,
		CreatedAt:     contact.CreatedAt,
		UpdatedAt:     contact.UpdatedAt,
	}
}

func toContactResponses(contacts []domain.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, toContactResponse(&contacts[i]))
	}
	return out
}
