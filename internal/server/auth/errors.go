package auth

import (
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Kind is the externally visible class of a failure. Every error produced
// below the transport layer is mapped to exactly one Kind by KindOf.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindConflict
	KindNotFound
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindConfiguration:
		return "configuration fault"
	default:
		return "internal error"
	}
}

// Header-shape failures.
var (
	ErrMissingHeader   = errors.New("authorization header missing")
	ErrMalformedScheme = errors.New("authorization scheme malformed")
	ErrEmptyToken      = errors.New("bearer token empty")
)

// Token failures. They are told apart in logs and metrics only.
var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
)

// Hashing and signing failures.
var (
	ErrHashing    = errors.New("password hashing failed")
	ErrSigning    = errors.New("token signing failed")
	ErrSigningKey = errors.New("token signing key missing")
)

// Error tags an underlying failure with the Kind the caller will see.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf maps err to the single Kind reported outside the process. Tagged
// errors keep their Kind; known sentinels are classified; anything else is
// internal.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	switch {
	case errors.Is(err, ErrMissingHeader),
		errors.Is(err, ErrMalformedScheme),
		errors.Is(err, ErrEmptyToken),
		errors.Is(err, common.ErrorValidation):
		return KindBadRequest
	case errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		return KindUnauthorized
	case errors.Is(err, common.ErrorAlreadyExists):
		return KindConflict
	case errors.Is(err, common.ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrSigningKey),
		errors.Is(err, common.ErrorMissingSecret):
		return KindConfiguration
	default:
		return KindInternal
	}
}

// Reason returns a short label for the internal cause of a gate decision,
// used in logs and metrics. It returns "ok" for a nil error.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, ErrMalformedScheme):
		return "malformed_scheme"
	case errors.Is(err, ErrEmptyToken):
		return "empty_token"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed_token"
	default:
		return "other"
	}
}
