package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every NotFoundError so callers can use errors.Is
var ErrNotFound = errors.New("not found")

// NotFoundError represents a referenced entity that does not exist
type NotFoundError struct {
	Resource string
	ID       int64
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// Unwrap lets errors.Is match ErrNotFound
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound creates a NotFoundError for a resource and identifier
func NewNotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents malformed input at the API boundary
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// RuleViolationError is a rejected business operation (missing author,
// posting too often, disallowed content). It is never retried.
type RuleViolationError struct {
	Reason string
}

// Error implements the error interface
func (e *RuleViolationError) Error() string {
	return e.Reason
}

// NewRuleViolation creates a RuleViolationError with a formatted reason
func NewRuleViolation(format string, args ...any) *RuleViolationError {
	return &RuleViolationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a backing-store failure
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err unless it is nil or already a StorageError
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsRuleViolation checks if an error is a RuleViolationError
func IsRuleViolation(err error) bool {
	var ruleErr *RuleViolationError
	return errors.As(err, &ruleErr)
}

// IsStorage checks if an error is a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
