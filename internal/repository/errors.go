package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row exists for the given id (or
	// email) under the given owner. Absence is an expected outcome, not
	// a storage failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update collides with a
	// unique column (contact email/phone, account email).
	ErrDuplicate = errors.New("duplicate value for unique column")
)

// translate maps GORM sentinel errors onto the repository taxonomy.
// Anything else (connectivity, transaction failures) passes through
// unmodified; retries are the caller's concern.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
