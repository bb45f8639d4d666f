package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeri7122/hw14/internal/config"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/handlers"
	"github.com/valeri7122/hw14/internal/models"
	"github.com/valeri7122/hw14/internal/repository"
	"github.com/valeri7122/hw14/internal/routes"
	"github.com/valeri7122/hw14/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		JWTEmailExpiry:   time.Hour,
	}

	userRepo := repository.NewUsers(db, nil)
	contactRepo := repository.NewContacts(db)
	authService := services.NewAuthService(userRepo, cfg)

	app := fiber.New()
	routes.Setup(app, cfg, userRepo,
		handlers.NewAuthHandler(authService),
		handlers.NewContactHandler(contactRepo),
		handlers.NewUserHandler(userRepo),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func signupAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "tester",
		Email:    email,
		Password: "long enough password",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "long enough password",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokens dto.TokenResponse
	decode(t, resp, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func contactBody(first, last, email, phone, birthday string) dto.ContactRequest {
	return dto.ContactRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Birthday:  birthday,
	}
}

type contactJSON struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Done      bool   `json:"done"`
}

func TestContactLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := signupAndLogin(t, app, "owner@example.com")

	// Create
	resp := doJSON(t, app, fiber.MethodPost, "/api/contacts/", token,
		contactBody("Ann", "Smith", "ann@example.com", "+380501112233", "2000-03-05"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created contactJSON
	decode(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ann", created.FirstName)

	// Duplicate email conflicts
	resp = doJSON(t, app, fiber.MethodPost, "/api/contacts/", token,
		contactBody("Other", "Person", "ann@example.com", "+380509998877", "1999-01-01"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// List
	resp = doJSON(t, app, fiber.MethodGet, "/api/contacts/?skip=0&limit=10", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed []contactJSON
	decode(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Search by first name
	resp = doJSON(t, app, fiber.MethodGet, "/api/contacts/search?first_name=Ann", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var found []contactJSON
	decode(t, resp, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "ann@example.com", found[0].Email)

	// Status update
	resp = doJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/api/contacts/%d", created.ID), token,
		dto.ContactStatusRequest{Done: true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var patched contactJSON
	decode(t, resp, &patched)
	assert.True(t, patched.Done)

	// Delete, then the id is gone
	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestContactsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/contacts/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/contacts/", "garbage-token",
		contactBody("Ann", "Smith", "ann@example.com", "1001", "2000-03-05"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestContactsAreIsolatedPerOwner(t *testing.T) {
	app := newTestApp(t)
	tokenA := signupAndLogin(t, app, "a@example.com")
	tokenB := signupAndLogin(t, app, "b@example.com")

	resp := doJSON(t, app, fiber.MethodPost, "/api/contacts/", tokenA,
		contactBody("Ann", "Smith", "ann@example.com", "1001", "2000-03-05"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created contactJSON
	decode(t, resp, &created)

	// Owner B cannot see or touch A's contact.
	resp = doJSON(t, app, fiber.MethodGet, "/api/contacts/", tokenB, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed []contactJSON
	decode(t, resp, &listed)
	assert.Empty(t, listed)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.ID), tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/api/contacts/%d", created.ID), tokenB,
		dto.ContactStatusRequest{Done: true})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpcomingBirthdaysOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := signupAndLogin(t, app, "owner@example.com")

	soon := time.Now().AddDate(0, 0, 3)
	far := time.Now().AddDate(0, 0, 40)

	resp := doJSON(t, app, fiber.MethodPost, "/api/contacts/", token,
		contactBody("Soon", "S", "soon@example.com", "1001", fmt.Sprintf("1992-%02d-%02d", soon.Month(), soon.Day())))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodPost, "/api/contacts/", token,
		contactBody("Far", "F", "far@example.com", "1002", fmt.Sprintf("1992-%02d-%02d", far.Month(), far.Day())))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, fiber.MethodGet, "/api/contacts/birthdays", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var upcoming []contactJSON
	decode(t, resp, &upcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Soon", upcoming[0].FirstName)
}
