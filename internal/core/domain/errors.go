package domain

import "errors"

// Kind is the stable, machine-readable class of a domain error.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindConflict           Kind = "conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthorized       Kind = "unauthorized"
	KindNotFound           Kind = "not_found"
	KindInternal           Kind = "internal"
)

// Error is a sentinel domain error. Compare with errors.Is; the kind decides
// the HTTP status at the edge.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Validation.
var ErrValidation = newError(KindValidation, "validation failed")

// Conflict.
var (
	ErrUserExists    = newError(KindConflict, "user already exists")
	ErrEmailTaken    = newError(KindConflict, "email already in use")
	ErrUsernameTaken = newError(KindConflict, "username already in use")
)

// Credentials. One message for every login failure.
var ErrInvalidCredentials = newError(KindInvalidCredentials, "invalid username or password")

// Unauthorized: token failures.
var (
	ErrTokenMissing = newError(KindUnauthorized, "missing bearer token")
	ErrTokenInvalid = newError(KindUnauthorized, "invalid token")
	ErrTokenExpired = newError(KindUnauthorized, "token has expired")
	ErrTokenKind    = newError(KindUnauthorized, "wrong token type")
	ErrTokenRevoked = newError(KindUnauthorized, "token has been revoked")
)

// Unauthorized: role and account failures.
var (
	ErrStaffOnly    = newError(KindUnauthorized, "only staff users can perform this action")
	ErrInactiveUser = newError(KindUnauthorized, "user account is inactive")
)

// Not found.
var (
	ErrUserNotFound  = newError(KindNotFound, "user not found")
	ErrOrderNotFound = newError(KindNotFound, "order not found")
)

// KindOf returns the kind of the first domain error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsTokenError reports whether err is a bearer-token verification failure, as
// opposed to a role or account check.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenKind) ||
		errors.Is(err, ErrTokenRevoked)
}
