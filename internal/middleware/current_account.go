package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/models"
	"github.com/valeri7122/hw14/internal/repository"
)

const accountKey = "account"

// CurrentAccount resolves the authenticated account once per request
// from the verified access token and stores it in context locals. Every
// repository call downstream receives this account as its ownership
// scope; no handler re-authenticates.
func CurrentAccount(users *repository.Users) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := tokenSubject(c)
		if !ok {
			return unauthorized(c)
		}

		user, err := users.GetByEmail(email)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(accountKey, user)
		return c.Next()
	}
}

// Account returns the account resolved by CurrentAccount, or nil when
// the middleware did not run.
func Account(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(accountKey).(*models.User)
	return user
}

func tokenSubject(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	// Only access-scope tokens may authenticate requests; refresh and
	// email tokens carry the same signature but a different scope claim.
	if scope, _ := claims["scope"].(string); scope != "access" {
		return "", false
	}
	email, ok := claims["sub"].(string)
	return email, ok && email != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}
