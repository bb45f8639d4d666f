package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/middleware"
	"github.com/valeri7122/hw14/internal/repository"
)

type UserHandler struct {
	users *repository.Users
}

func NewUserHandler(users *repository.Users) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(userResponse(middleware.Account(c)))
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	var req dto.AvatarRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.UpdateAvatar(middleware.Account(c).Email, req.URL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c)
	}
	return c.JSON(userResponse(user))
}
