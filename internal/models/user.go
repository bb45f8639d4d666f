package models

import "time"

// User is an account that owns a set of contacts. Email is the login
// identity and is unique across all accounts.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Email        string    `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Avatar       *string   `gorm:"size:255" json:"avatar"`
	RefreshToken *string   `gorm:"size:255" json:"-"`
	Confirmed    bool      `gorm:"default:false" json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
}
