package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTenantNotFound is returned when a slug does not resolve to an active tenant.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrConflict is returned when provisioning a slug that already exists.
	ErrConflict = errors.New("conflict")
	// ErrNotFound covers both missing rows and rows owned by another tenant.
	ErrNotFound = errors.New("not found")
	// ErrTenantRequired guards every scoped query against a zero tenant id.
	ErrTenantRequired = errors.New("tenant id is required")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports rejected input. Field is empty for whole-input problems.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PartialBatchFailure is returned by batch jobs that completed but could not
// write some rows.
type PartialBatchFailure struct {
	FailedIDs []uint64
}

func (e *PartialBatchFailure) Error() string {
	ids := make([]string, len(e.FailedIDs))
	for i, id := range e.FailedIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("partial batch failure: %d row(s) failed [%s]", len(e.FailedIDs), strings.Join(ids, ","))
}
