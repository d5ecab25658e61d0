// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"homiee/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 128
	MaxUserNameLen = 60
)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return models.NewValidationError(fmt.Sprintf("password must be at least %d characters long", MinPasswordLen))
	}
	if len(password) > MaxPasswordLen {
		return models.NewValidationError(fmt.Sprintf("password must not exceed %d characters", MaxPasswordLen))
	}
	return nil
}

// ValidateUserName checks that a username is present and within bounds.
func ValidateUserName(userName string) error {
	trimmed := strings.TrimSpace(userName)
	if trimmed == "" {
		return models.NewValidationError("username is required")
	}
	if len(trimmed) > MaxUserNameLen {
		return models.NewValidationError(fmt.Sprintf("username must not exceed %d characters", MaxUserNameLen))
	}
	return nil
}

// NormalizeTag strips a leading hashtag marker and lowercases the tag for
// the case-insensitive hashtag feed match. Community matching deliberately
// does NOT use this; it stays exact-match.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
}
