package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("no %s found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// AuthReason tags every authentication decision for audit logs and metrics.
type AuthReason string

const (
	AuthMissingCredentials AuthReason = "missing_credentials"
	AuthInvalidKey         AuthReason = "invalid_key"
	AuthInvalidGroup       AuthReason = "invalid_group"
)

type AuthError struct {
	Reason AuthReason
}

func (e AuthError) Error() string {
	switch e.Reason {
	case AuthMissingCredentials:
		return "missing credentials"
	case AuthInvalidKey:
		return "invalid API key"
	case AuthInvalidGroup:
		return "group not allowed"
	default:
		return "unauthorized"
	}
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}
