package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contact is a single address-book record. It belongs to exactly one
// user; deleting the user cascades to its contacts. Email and phone are
// unique across the whole table, not just within one owner's book.
type Contact struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FirstName string         `gorm:"size:50;not null" json:"first_name"`
	LastName  string         `gorm:"size:50;not null" json:"last_name"`
	Email     string         `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone     string         `gorm:"size:50;not null;uniqueIndex" json:"phone"`
	Birthday  datatypes.Date `gorm:"not null" json:"birthday"`
	Note      *string        `gorm:"size:100" json:"note"`
	Done      bool           `gorm:"default:false" json:"done"`
	CreatedAt time.Time      `json:"created_at"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	User      User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
