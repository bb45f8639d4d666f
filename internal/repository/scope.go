package repository

import (
	"github.com/valeri7122/hw14/internal/models"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope that restricts a query to rows owned by
// the given account. Every contact query goes through it so the
// ownership predicate is part of the SQL, never an in-memory check.
func ForOwner(owner *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", owner.ID)
	}
}
