package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NotFoundError reports a lookup by id that matched no row. Repositories
// return (nil, nil) for absent single-entity lookups; this type is raised by
// callers that need absence to be an error, such as the HTTP layer.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if stderrors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// ConnectionError means the store could not be reached or refused the
// credentials.
type ConnectionError struct {
	Op    string
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s: %v", e.Op, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

func NewConnectionError(op string, cause error) *ConnectionError {
	return &ConnectionError{Op: op, Cause: cause}
}

func IsConnectionError(err error) (*ConnectionError, bool) {
	var ce *ConnectionError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// StorageError is a statement failure not tied to a business rule.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

func IsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IntegrityViolation is raised when a statement breaks a referential or
// uniqueness constraint, typically a cascade step executed out of order.
type IntegrityViolation struct {
	Op    string
	Cause error
}

func (e *IntegrityViolation) Error() string {
	return fmt.Sprintf("integrity violation: %s: %v", e.Op, e.Cause)
}

func (e *IntegrityViolation) Unwrap() error {
	return e.Cause
}

func NewIntegrityViolation(op string, cause error) *IntegrityViolation {
	return &IntegrityViolation{Op: op, Cause: cause}
}

func IsIntegrityViolation(err error) (*IntegrityViolation, bool) {
	var iv *IntegrityViolation
	if stderrors.As(err, &iv) {
		return iv, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
