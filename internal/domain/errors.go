package domain

import "errors"

// ErrNotFound is returned by service functions when the requested trip or
// child entity does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing departure time, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoIdentity is returned when an operation needs a signed-in user and the
// store has no active identity. Handlers should map this to HTTP 401.
var ErrNoIdentity = errors.New("no signed-in user")
