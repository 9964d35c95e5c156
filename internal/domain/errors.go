package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database or is owned by another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. blank item text, unknown list kind).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a request carries no valid session or
// the supplied credentials do not match. Handlers map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller is authenticated but the
// requested surface is switched off (e.g. the explorer). Maps to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write collides with a unique constraint,
// such as signing up with an email that is already registered. Maps to 409.
var ErrConflict = errors.New("conflict")
