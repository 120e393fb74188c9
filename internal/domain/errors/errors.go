package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrStoreClosed        = errors.New("store closed")
	ErrDialogClosed       = errors.New("dialog closed")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrEmptyOrder         = errors.New("order has no items")
)

// FieldCode identifies a validation failure on a single buyer field.
type FieldCode string

const (
	NameRequired  FieldCode = "NameRequired"
	PhoneRequired FieldCode = "PhoneRequired"
	PhoneInvalid  FieldCode = "PhoneInvalid"
	EmailInvalid  FieldCode = "EmailInvalid"
	TermsRequired FieldCode = "TermsRequired"
)

// FieldError reports one validation failure. Validation errors are
// recoverable and surfaced inline; they never reach the network layer.
type FieldError struct {
	Field string
	Code  FieldCode
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// FieldErrors aggregates every failure of one validation pass.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether the set contains a failure with the given code.
func (e FieldErrors) Has(code FieldCode) bool {
	for _, fe := range e {
		if fe.Code == code {
			return true
		}
	}
	return false
}
