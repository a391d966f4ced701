package services

import (
	"vidshare/internal/repositories"

	"github.com/pkg/errors"
)

// Errors returned by services. Callers match them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// translate maps repository not-found errors onto ErrNotFound and wraps
// anything else with the given context.
func translate(err error, format string, args ...interface{}) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
