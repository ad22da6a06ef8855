package code

// Server: generic HTTP/bind errors. Code must start with 1xxxxx.
const (
	// ErrSuccess - 200: OK.
	ErrSuccess int = iota + 100001

	// ErrUnknown - 500: unclassified internal error.
	ErrUnknown

	// ErrBind - 400: failed to bind the request body to the target struct.
	ErrBind

	// ErrTokenInvalid - 401: bearer token is malformed, unsigned, or unknown.
	ErrTokenInvalid

	// ErrTokenExpired - 401: bearer token has expired.
	ErrTokenExpired

	// ErrMissingHeader - 401: the Authorization header was empty.
	ErrMissingHeader

	// ErrInvalidAuthHeader - 401: the Authorization header was not "Bearer <token>".
	ErrInvalidAuthHeader

	// ErrPasswordIncorrect - 401: supplied password did not match the stored hash.
	ErrPasswordIncorrect

	// ErrPasswordAuthDisabled - 204: password auth is disabled; no token is issued.
	ErrPasswordAuthDisabled

	// ErrValidation - 400: one or more validation errors (see Details).
	ErrValidation
)
