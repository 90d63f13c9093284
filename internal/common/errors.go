// Package common defines shared sentinel errors used across the staffdesk
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrorInvalidPassword = errors.New("invalid password")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")

	// Refresh-token lifecycle errors.
	ErrorNotRegistered = errors.New("refresh token not registered")
)
