// Package common defines shared constants and sentinel errors used across
// the donation platform. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Payment-specific errors.
	ErrorInvalidSecret      = errors.New("invalid secret key")
	ErrorInvalidDestination = errors.New("invalid destination")
	ErrorInvalidAmount      = errors.New("invalid amount")

	// Ledger interaction errors. ErrorLedgerRejected means the network
	// received and refused the transaction; ErrorLedgerUnavailable means
	// the call never produced a structured answer.
	ErrorLedgerRejected    = errors.New("transaction rejected by ledger")
	ErrorLedgerUnavailable = errors.New("ledger unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
