package service

import (
	"errors"

	"github.com/myrestapi/backend/internal/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

// ValidationError carries the full error list so the boundary layer can
// report every offending field at once.
type ValidationError struct {
	Errors *model.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ExpiredTokenError reports a refresh token past its expiry. The token
// record has already been deleted when this is returned.
type ExpiredTokenError struct {
	Token string
}

func (e *ExpiredTokenError) Error() string {
	return e.Token + " Refresh token was expired. Please make a new signin request"
}
