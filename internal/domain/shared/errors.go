package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConflict            = NewDomainError("CONFLICT", "Resource state prevents the requested change")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// InvalidTransitionError is returned when a status change is not an edge of
// the entity's declared transition graph.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}

// Code returns the domain error code for this error type
func (e *InvalidTransitionError) Code() string {
	return "INVALID_TRANSITION"
}

// NewInvalidTransitionError creates an invalid transition error
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

// GuardFailedError is returned when a transition precondition does not hold.
// Reason carries the user-facing message for the specific guard that failed.
type GuardFailedError struct {
	Entity string
	Guard  string
	Reason string
}

// Error implements the error interface
func (e *GuardFailedError) Error() string {
	return e.Reason
}

// Code returns the domain error code for this error type
func (e *GuardFailedError) Code() string {
	return "GUARD_FAILED"
}

// NewGuardFailedError creates a guard failure with a user-facing reason
func NewGuardFailedError(entity, guard, reason string) *GuardFailedError {
	return &GuardFailedError{Entity: entity, Guard: guard, Reason: reason}
}

// InsufficientCapacityError is returned when a quota reservation would push
// an owner's used capacity past its maximum.
type InsufficientCapacityError struct {
	OwnerID   string
	Requested int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: requested %d, available %d", e.Requested, e.Available)
}

// Code returns the domain error code for this error type
func (e *InsufficientCapacityError) Code() string {
	return "INSUFFICIENT_CAPACITY"
}
