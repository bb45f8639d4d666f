package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/valeri7122/hw14/internal/config"
	"github.com/valeri7122/hw14/internal/dto"
	"github.com/valeri7122/hw14/internal/models"
	"github.com/valeri7122/hw14/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// Token scopes. The access scope is the only one accepted by the HTTP
// auth middleware; refresh and email-confirmation tokens are single
// purpose.
const (
	scopeAccess       = "access"
	scopeRefresh      = "refresh"
	scopeEmailConfirm = "email_confirm"
)

type AuthService struct {
	users *repository.Users
	cfg   *config.Config
}

func NewAuthService(users *repository.Users, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates a new unconfirmed account. The plaintext password is
// hashed here; the directory below only ever sees the hash.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(ctx, repository.UserData{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	})
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

// Refresh rotates the token pair. The presented token must match the one
// stored on the account; on mismatch the stored token is cleared so a
// stolen-then-replayed token cannot keep a session alive.
func (s *AuthService) Refresh(refreshToken string) (*dto.TokenResponse, error) {
	email, err := s.parseToken(refreshToken, scopeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.users.UpdateRefreshToken(user, nil); err != nil {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	return s.issueTokenPair(user)
}

func (s *AuthService) Logout(user *models.User) error {
	return s.users.UpdateRefreshToken(user, nil)
}

// EmailToken issues the confirmation token that the (external) mailer
// embeds in the verification link.
func (s *AuthService) EmailToken(email string) (string, error) {
	return s.signToken(email, scopeEmailConfirm, s.cfg.JWTEmailExpiry)
}

// ConfirmEmail verifies a confirmation token and flags the account.
func (s *AuthService) ConfirmEmail(token string) error {
	email, err := s.parseToken(token, scopeEmailConfirm)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.users.ConfirmEmail(email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueTokenPair(user *models.User) (*dto.TokenResponse, error) {
	accessToken, err := s.signToken(user.Email, scopeAccess, s.cfg.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signToken(user.Email, scopeRefresh, s.cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRefreshToken(user, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) signToken(email, scope string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   email,
		"scope": scope,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) parseToken(tokenString, wantScope string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if scope, _ := claims["scope"].(string); scope != wantScope {
		return "", ErrInvalidToken
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
