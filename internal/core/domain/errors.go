package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by every layer. Transport maps them to status codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrAuthentication       = errors.New("authentication failed")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrConflict             = errors.New("conflict")
	ErrUserExists           = errors.New("user already exists")
	ErrAuditTrailIncomplete = errors.New("audit trail write failed")
)

// Authentication failures. All of them wrap ErrAuthentication so callers that
// must not distinguish the cause can match the base error only.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	ErrInactiveAccount    = fmt.Errorf("%w: inactive account", ErrAuthentication)
	ErrCredentialLocked   = fmt.Errorf("%w: too many failed attempts", ErrAuthentication)
	ErrSessionExpired     = fmt.Errorf("%w: session expired", ErrAuthentication)
	ErrSessionInvalid     = fmt.Errorf("%w: invalid session", ErrAuthentication)
	ErrUnknownPrincipal   = fmt.Errorf("%w: unknown principal", ErrAuthentication)
)

// FieldError describes a validation failure on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a rejected input.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields returns the names of the offending fields.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError for entity/id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// AuditTrailError reports a degraded success: the mutation on EntityID is
// durable but its audit entry could not be written. The entry has been handed
// to reconciliation.
type AuditTrailError struct {
	Action   AuditAction
	EntityID string
	Err      error
}

func (e *AuditTrailError) Error() string {
	return fmt.Sprintf("%s %s succeeded but audit trail write failed: %v", e.Action, e.EntityID, e.Err)
}

func (e *AuditTrailError) Unwrap() []error { return []error{ErrAuditTrailIncomplete, e.Err} }
