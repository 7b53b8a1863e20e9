package store

import (
	"errors"
	"fmt"
)

// ErrNegativeQuantity is returned when a stock write would go below zero.
var ErrNegativeQuantity = errors.New("quantity must not be negative")

// ErrEmptyName is returned when a product would be created or renamed
// without a name.
var ErrEmptyName = errors.New("product name must not be empty")

// NotFoundError: no product in the catalog matches the query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no product matches %q", e.Query)
}

// AmbiguousError: two or more products match the query, the caller must
// not guess which one was meant.
type AmbiguousError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%d products match %q", len(e.Matches), e.Query)
}

// ConflictError: a unique field (name or article number) is already taken.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}
