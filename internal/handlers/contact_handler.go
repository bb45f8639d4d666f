package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/middleware"
	"github.com/valeri7122/hw14/internal/repository"
)

type ContactHandler struct {
	contacts *repository.Contacts
}

func NewContactHandler(contacts *repository.Contacts) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	birthday, _ := req.ParseBirthday()

	contact, err := h.contacts.Create(repository.ContactData{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  birthday,
		Note:      req.Note,
	}, middleware.Account(c))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "A contact with this email or phone already exists",
			})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if skip < 0 || limit < 0 {
		return badRequest(c, "skip and limit must be non-negative")
	}

	contacts, err := h.contacts.List(skip, limit, middleware.Account(c))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(contacts)
}

func (h *ContactHandler) Search(c *fiber.Ctx) error {
	var query repository.SearchQuery
	if v := c.Query("first_name"); v != "" {
		query.FirstName = &v
	}
	if v := c.Query("last_name"); v != "" {
		query.LastName = &v
	}
	if v := c.Query("email"); v != "" {
		query.Email = &v
	}

	contacts, err := h.contacts.Search(query, middleware.Account(c))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(contacts)
}

func (h *ContactHandler) UpcomingBirthdays(c *fiber.Ctx) error {
	contacts, err := h.contacts.UpcomingBirthdays(middleware.Account(c))
	if err != nil {
		return internalError(c)
	}
	return c.JSON(contacts)
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	contactID, err := c.ParamsInt("id")
	if err != nil || contactID < 1 {
		return badRequest(c, "Invalid contact id")
	}

	var req dto.ContactUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	birthday, _ := req.ParseBirthday()

	contact, err := h.contacts.Update(uint(contactID), repository.ContactUpdate{
		ContactData: repository.ContactData{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Birthday:  birthday,
			Note:      req.Note,
		},
		Done: req.Done,
	}, middleware.Account(c))
	if err != nil {
		return h.contactError(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	contactID, err := c.ParamsInt("id")
	if err != nil || contactID < 1 {
		return badRequest(c, "Invalid contact id")
	}

	var req dto.ContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contact, err := h.contacts.UpdateStatus(uint(contactID), req.Done, middleware.Account(c))
	if err != nil {
		return h.contactError(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) Remove(c *fiber.Ctx) error {
	contactID, err := c.ParamsInt("id")
	if err != nil || contactID < 1 {
		return badRequest(c, "Invalid contact id")
	}

	contact, err := h.contacts.Remove(uint(contactID), middleware.Account(c))
	if err != nil {
		return h.contactError(c, err)
	}
	return c.JSON(contact)
}

func (h *ContactHandler) contactError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Contact not found")
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "A contact with this email or phone already exists",
		})
	}
	return internalError(c)
}
