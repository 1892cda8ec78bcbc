// Package apperrors holds the error kinds shared by services and handlers.
// Handlers map them to HTTP status codes; everything else is an internal
// error and is reported without detail.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrTokenInvalid    = errors.New("invalid or expired token")
	ErrDeliveryFailure = errors.New("email delivery failed")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type TokenReason string

const (
	TokenMalformed    TokenReason = "malformed"
	TokenExpired      TokenReason = "expired"
	TokenAlreadyUsed  TokenReason = "already_used"
	TokenBadSignature TokenReason = "bad_signature"
)

// TokenError carries the precise rejection reason. It matches ErrTokenInvalid
// with errors.Is so callers can treat every reason alike.
type TokenError struct {
	Reason TokenReason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return "token " + string(e.Reason)
}

func (e *TokenError) Is(target error) bool { return target == ErrTokenInvalid }

func (e *TokenError) Unwrap() error { return e.Err }

// Reason extracts the token rejection reason, if err is a TokenError.
func Reason(err error) (TokenReason, bool) {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Reason, true
	}
	return "", false
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
