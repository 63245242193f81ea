// Package common defines sentinel errors and small helpers shared by the
// server and client layers of rpgkeeper. Callers should use errors.Is to
// match the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Configuration errors. These are fatal at startup.
	ErrMissingTokenSecret = errors.New("AppSettings:Token is not configured")
)
