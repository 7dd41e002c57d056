package services

import (
	"strings"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
)

// requiredText trims value and rejects it when nothing is left
func requiredText(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.Validation(field + " is required")
	}
	return trimmed, nil
}

// optionalText handles partial updates: nil means "leave unchanged",
// an explicitly empty value is rejected.
func optionalText(value *string, field string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, apperrors.Validation(field + " cannot be empty")
	}
	return &trimmed, nil
}

// requireOwner is the single-owner guard shared by posts, comments and notifications
func requireOwner(ownerID, actorID uint) error {
	if ownerID != actorID {
		return apperrors.Forbidden("Not authorized")
	}
	return nil
}
