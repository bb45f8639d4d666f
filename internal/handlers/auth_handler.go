package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/middleware"
	"github.com/valeri7122/hw14/internal/models"
	"github.com/valeri7122/hw14/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.Account(c)); err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// ConfirmEmail is the target of the verification link; the token was
// issued by RequestConfirmation and delivered out of band.
func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	err := h.authService.ConfirmEmail(c.Params("token"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		if errors.Is(err, services.ErrInvalidToken) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Email confirmed"})
}

// RequestConfirmation issues a fresh confirmation token for the current
// account. Mail delivery is an external concern, so the token is handed
// back to the caller.
func (h *AuthHandler) RequestConfirmation(c *fiber.Ctx) error {
	user := middleware.Account(c)
	if user.Confirmed {
		return c.JSON(fiber.Map{"message": "Email already confirmed"})
	}

	token, err := h.authService.EmailToken(user.Email)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(fiber.Map{"token": token})
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Confirmed: user.Confirmed,
		CreatedAt: user.CreatedAt,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
