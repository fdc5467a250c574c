package domain

import "errors"

// Business errors (mapped to HTTP codes in the transport layer)
var (
	ErrInvalidInput     = errors.New("invalid_input")      // 400
	ErrNotFound         = errors.New("not_found")          // 404
	ErrConflict         = errors.New("conflict")           // 409
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnavailable      = errors.New("unavailable")        // 503
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// error.code values for the API envelope
const (
	ErrCodeInvalidInput     = 1400
	ErrCodeNotFound         = 1404
	ErrCodeConflict         = 1409
	ErrCodeMethodNotAllowed = 1405
	ErrCodeUnavailable      = 1503
	ErrCodeUnexpected       = 1500
)
