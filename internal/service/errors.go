package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotFound               = errors.New("not found")
	ErrInvalidState           = errors.New("invalid state")
	ErrValidation             = errors.New("validation failed")
	ErrStorage                = errors.New("storage failure")
	ErrConflict               = errors.New("conflict")
	ErrForbidden              = errors.New("forbidden")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// lookupError maps a repository lookup failure to ErrNotFound or ErrStorage.
func lookupError(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return storageError("load "+what, err)
}
