// Package common defines shared constants and sentinel errors used across
// the NoteKeeper server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorValidation     = errors.New("validation error")
	ErrorExportDisabled = errors.New("export disabled")

	// Configuration errors, fatal at startup.
	ErrorMissingSecret = errors.New("secret key is not configured")
)
