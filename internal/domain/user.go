package domain

import (
	"strings"
	"time"
)

// User is a registered account. ID is the login handle chosen at registration.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CheckUserID appends a field error to errs when id is empty or cannot be
// part of a storage key.
func CheckUserID(errs []FieldError, field, id string) []FieldError {
	switch {
	case id == "":
		return append(errs, FieldError{Field: field, Message: "required"})
	case strings.ContainsRune(id, 0):
		return append(errs, FieldError{Field: field, Message: "contains invalid characters"})
	}
	return errs
}

// ValidateUserID is CheckUserID for a single identifier.
func ValidateUserID(field, id string) error {
	if errs := CheckUserID(nil, field, id); len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
