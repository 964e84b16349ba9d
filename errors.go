package kil

import "errors"

// Error kinds returned by the inventory operations. Callers test for them with
// errors.Is; the returned errors wrap one of these with some context.
var (
	// ErrInvalidInput reports a malformed user supplied value: an empty name,
	// a negative stock, a non-positive amount or an invalid date.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateName reports an attempt to add a line item whose name is already used.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInsufficientStock reports a usage larger than the current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNotFound reports an operation on a line item that is not in the store.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFormat reports a document that cannot be imported.
	ErrInvalidFormat = errors.New("invalid format")
)
