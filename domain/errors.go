package domain

import "errors"

// Session errors
var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session has expired")
)

// Resource errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDealInactive = errors.New("deal is no longer active")
)

// RequestError is the single failure shape for any backend call: network
// failure, non-2xx response or timeout. Message is taken from the server
// "detail" field when present, else the transport failure, else a generic
// fallback.
type RequestError struct {
	Message    string
	StatusCode int
}

func (e *RequestError) Error() string { return e.Message }

// AuthError is a sign-in or sign-up rejection from the identity provider.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ValidationError is client-side input rejection raised before any network
// call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == 404
}
