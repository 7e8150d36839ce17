package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden is returned when the authenticated user lacks the required role
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// ErrConflict is returned when there's a conflict (e.g., duplicate email)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrEmptyCart is returned when checkout is attempted on an empty cart
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrAssetPolicy is returned when an uploaded asset violates the storage
// policy (wrong content type, too large). Distinct from generic upload
// failures so the caller can surface the policy message instead of a generic
// internal error.
type ErrAssetPolicy struct {
	Message string
}

func (e *ErrAssetPolicy) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "asset violates storage policy"
}

// ErrInvalidStatus is returned when an order status value is not one of the
// known statuses
type ErrInvalidStatus struct {
	Status string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid order status: %s", e.Status)
}
