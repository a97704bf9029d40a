package posts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post is not found by ID
	ErrNotFound = errors.New("post not found")

	// ErrAccountNotFound is returned when a draft references an unknown account
	ErrAccountNotFound = errors.New("account not found")
)

// ValidationError carries the issues that blocked a create or reschedule
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Issues, "; "))
}

// NewValidationError creates a new validation error
func NewValidationError(issues ...string) error {
	return &ValidationError{Issues: issues}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// ValidationIssues returns the issues carried by err, or nil
func ValidationIssues(err error) []string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Issues
	}
	return nil
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post", "account"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Unwrap lets errors.Is match the sentinel for the resource
func (e *NotFoundError) Unwrap() error {
	if e.Resource == "account" {
		return ErrAccountNotFound
	}
	return ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAccountNotFound)
}
