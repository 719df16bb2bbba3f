package service

import (
	"errors"
	"fmt"

	"menucup/internal/database"
	"menucup/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrReaderNil  = errors.New("reader is nil")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps repository errors onto service sentinels. what names the missing entity.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNoRows(err):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s slug %w", what, ErrConflict)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s references a missing row", ErrValidation, what)
	case errors.Is(err, repository.ErrOrderMismatch):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
