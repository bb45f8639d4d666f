package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/valeri7122/hw14/internal/config"
	"github.com/valeri7122/hw14/internal/handlers"
	"github.com/valeri7122/hw14/internal/middleware"
	"github.com/valeri7122/hw14/internal/repository"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users *repository.Users,
	authHandler *handlers.AuthHandler,
	contactHandler *handlers.ContactHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/confirm/:token", authHandler.ConfirmEmail)

	// Everything below requires a valid access token and a resolved
	// account; repositories receive that account as the ownership scope.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.CurrentAccount(users))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/request-confirmation", authHandler.RequestConfirmation)

	protected.Get("/users/me", userHandler.Me)
	protected.Patch("/users/avatar", userHandler.UpdateAvatar)

	contacts := protected.Group("/contacts")
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/search", contactHandler.Search)
	contacts.Get("/birthdays", contactHandler.UpcomingBirthdays)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Patch("/:id", contactHandler.UpdateStatus)
	contacts.Delete("/:id", contactHandler.Remove)
}
