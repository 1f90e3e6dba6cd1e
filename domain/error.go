// Package domain defines error types for the inventory and sales system.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given title is not in the catalog
type ProductNotFoundError struct {
	Title string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: title=%q", e.Title)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidFieldError is returned when a field violates its domain constraint
type InvalidFieldError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidFieldError
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidFieldError) Is(target error) bool {
	_, ok := target.(*InvalidFieldError)
	return ok
}

// DuplicateProductError is returned when registering a title that already exists
type DuplicateProductError struct {
	Title string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: title=%q already exists", e.Title)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// InsufficientStockError is returned when a sale requests more units than are
// in stock. It carries the available quantity so callers can report it.
type InsufficientStockError struct {
	Title     string
	Requested int
	Available int
}

// Error implements the error interface for InsufficientStockError
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: title=%q, requested=%d, available=%d", e.Title, e.Requested, e.Available)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(title string) error {
	return &ProductNotFoundError{Title: title}
}

// NewInvalidFieldError creates a new InvalidFieldError
func NewInvalidFieldError(field, reason string, value interface{}) error {
	return &InvalidFieldError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(title string) error {
	return &DuplicateProductError{Title: title}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(title string, requested, available int) error {
	return &InsufficientStockError{Title: title, Requested: requested, Available: available}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidFieldError checks if an error is an InvalidFieldError
func IsInvalidFieldError(err error) bool {
	var ife *InvalidFieldError
	return errors.As(err, &ife)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
