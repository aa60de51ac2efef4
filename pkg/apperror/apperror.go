// Package apperror defines the error taxonomy shared by services and the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidCredentials
	KindUnauthenticated
	KindInvalidRenewalToken
	KindAccessDenied
	KindResourceNotFound
	KindDomainStateViolation
	KindValidationFailure
	KindRateLimited
)

const (
	CodeInvalidCredentials   = "AUTH_001"
	CodeInvalidRenewalToken  = "AUTH_003"
	CodeAccessDenied         = "AUTH_004"
	CodeResourceNotFound     = "RESOURCE_001"
	CodeDomainStateViolation = "DOMAIN_001"
	CodeValidationFailure    = "VALIDATION_001"
	CodeRateLimited          = "RATE_001"
	CodeUnexpected           = "SERVER_001"
)

// Error is a domain failure carrying everything the boundary needs to render it.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, apperror.AccessDenied("")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Code: CodeInvalidCredentials, Message: "Authentication required"}
}

func InvalidRenewalToken(err error) *Error {
	return &Error{
		Kind:    KindInvalidRenewalToken,
		Code:    CodeInvalidRenewalToken,
		Message: "Invalid or expired refresh token",
		Err:     err,
	}
}

func AccessDenied(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{Kind: KindAccessDenied, Code: CodeAccessDenied, Message: message}
}

func NotFound(resource, id string) *Error {
	return &Error{
		Kind:    KindResourceNotFound,
		Code:    CodeResourceNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Detail:  id,
	}
}

func DomainState(message string) *Error {
	return &Error{Kind: KindDomainStateViolation, Code: CodeDomainStateViolation, Message: message}
}

func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidationFailure,
		Code:    CodeValidationFailure,
		Message: "Validation failed",
		Detail:  fields,
	}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Code: CodeRateLimited, Message: "Too many requests"}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Code: CodeUnexpected, Message: "Internal server error", Err: err}
}

// From returns err as an *Error, wrapping anything unknown as Unexpected.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}

func HTTPStatus(err error) int {
	switch From(err).Kind {
	case KindInvalidCredentials, KindUnauthenticated, KindInvalidRenewalToken:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindResourceNotFound:
		return http.StatusNotFound
	case KindDomainStateViolation, KindValidationFailure:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
