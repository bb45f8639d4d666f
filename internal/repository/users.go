package repository

import (
	"context"
	"log/slog"

	"github.com/valeri7122/hw14/internal/models"
	"gorm.io/gorm"
)

// AvatarLookup resolves a profile image URL for an email address. It is
// best-effort: a failed lookup never blocks account creation.
type AvatarLookup interface {
	Lookup(ctx context.Context, email string) (string, error)
}

// UserData carries the fields of a new account. Password is already
// hashed; this layer never sees the plaintext secret.
type UserData struct {
	Username string
	Email    string
	Password string
}

// Users owns account rows: lookup, signup, and the three post-creation
// mutations (refresh token, confirmed flag, avatar).
type Users struct {
	db      *gorm.DB
	avatars AvatarLookup
}

func NewUsers(db *gorm.DB, avatars AvatarLookup) *Users {
	return &Users{db: db, avatars: avatars}
}

// GetByEmail returns the account with that email or ErrNotFound.
func (r *Users) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create persists a new unconfirmed account. The avatar is resolved
// through the lookup collaborator; if that fails the account is stored
// with no avatar and the failure is only logged.
func (r *Users) Create(ctx context.Context, data UserData) (*models.User, error) {
	user := models.User{
		Username: data.Username,
		Email:    data.Email,
		Password: data.Password,
	}

	if r.avatars != nil {
		if url, err := r.avatars.Lookup(ctx, data.Email); err != nil {
			slog.Warn("avatar lookup failed", "email", data.Email, "error", err)
		} else {
			user.Avatar = &url
		}
	}

	if err := r.db.Create(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateRefreshToken overwrites the stored refresh token. A nil token
// clears it (logout).
func (r *Users) UpdateRefreshToken(user *models.User, token *string) error {
	user.RefreshToken = token
	return translate(r.db.Model(user).Update("refresh_token", token).Error)
}

// ConfirmEmail marks the account with that email as confirmed. Returns
// ErrNotFound when no such account exists.
func (r *Users) ConfirmEmail(email string) error {
	user, err := r.GetByEmail(email)
	if err != nil {
		return err
	}
	return translate(r.db.Model(user).Update("confirmed", true).Error)
}

// UpdateAvatar sets the avatar URL on the account with that email and
// returns the updated account, or ErrNotFound.
func (r *Users) UpdateAvatar(email, url string) (*models.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(user).Update("avatar", url).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}
