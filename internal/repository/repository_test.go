package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/valeri7122/hw14/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection would get its own empty :memory: DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Username: "tester",
		Email:    email,
		Password: "$2a$10$not.a.real.hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func seedContact(t *testing.T, db *gorm.DB, owner *models.User, first, last, email, phone string, birthday datatypes.Date) *models.Contact {
	t.Helper()

	contact := models.Contact{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Birthday:  birthday,
		UserID:    owner.ID,
	}
	require.NoError(t, db.Create(&contact).Error)
	return &contact
}
