package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup or a targeted delete matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a unique index
	ErrDuplicate = errors.New("duplicate record")
)

// translate folds gorm sentinels into the repository ones
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		return ErrDuplicate
	default:
		return err
	}
}

// isDuplicateKey relies on TranslateError first and falls back to the driver text
// for connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
