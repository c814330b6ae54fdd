package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// ConfigurationError means a required deployment setting (payment provider
// credentials, public site URL) is absent. It is surfaced to the operator
// and is not user-recoverable.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
}

// ValidationError lists the required checkout fields that are missing or
// invalid. The user can correct the input and retry.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// CheckoutCreationError wraps a provider rejection or network failure while
// creating a payment session. No local order exists; the user may retry.
type CheckoutCreationError struct {
	Err error
}

func (e *CheckoutCreationError) Error() string {
	return fmt.Sprintf("create checkout session: %v", e.Err)
}

func (e *CheckoutCreationError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed order or file write. Prior state (in
// particular the cart) is left intact so the user can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
