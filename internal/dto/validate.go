package dto

import (
	"errors"
	"fmt"
	"net/mail"
)

var errPasswordTooShort = errors.New("password must be at least 8 characters")

func fieldError(field, rule string) error {
	return fmt.Errorf("%s %s", field, rule)
}

func requireLength(field, value string, max int) error {
	if value == "" {
		return fieldError(field, "is required")
	}
	if len(value) > max {
		return fieldError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

func validEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fieldError("email", "must be a valid email address")
	}
	return nil
}
