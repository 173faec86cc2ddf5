package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConnectivity = errors.New("connectivity error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// It is user-correctable: handlers report it inline, no state changes.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// AssetErrorKind classifies screenshot upload/delete failures.
type AssetErrorKind string

const (
	AssetSizeExceeded AssetErrorKind = "size_exceeded" // raised locally, before any network call
	AssetInvalidType  AssetErrorKind = "invalid_type"  // raised locally, before any network call
	AssetPermission   AssetErrorKind = "permission"
	AssetCanceled     AssetErrorKind = "canceled"
	AssetTransport    AssetErrorKind = "transport"
)

// AssetError describes a failure while uploading or deleting a screenshot.
// Size and type violations are fully recoverable and never reach the network.
type AssetError struct {
	Kind    AssetErrorKind
	Message string
	Err     error
}

func (e *AssetError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("asset error: %s", e.Kind)
}

func (e *AssetError) Unwrap() error { return e.Err }

// NewAssetError creates an AssetError with a human-readable message.
func NewAssetError(kind AssetErrorKind, message string, err error) *AssetError {
	return &AssetError{Kind: kind, Message: message, Err: err}
}

// AsAssetError unwraps err into an *AssetError if possible.
func AsAssetError(err error) (*AssetError, bool) {
	var ae *AssetError
	ok := errors.As(err, &ae)
	return ae, ok
}
