package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller-correctable input errors.
	ErrValidation = errors.New("validation error")
	// ErrUnknownBank marks a bank identifier missing from the registry or
	// the calculator factory. It signals a configuration/programming error
	// rather than bad user input.
	ErrUnknownBank = errors.New("unknown bank")
)

// ValidationError carries the offending field and value so callers can build
// a user-facing message.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownBankError is returned by registry and factory lookups.
type UnknownBankError struct {
	ID string
}

func (e *UnknownBankError) Error() string {
	return fmt.Sprintf("unknown bank: %q", e.ID)
}

func (e *UnknownBankError) Is(target error) bool {
	return target == ErrUnknownBank
}

// NewInvalidSalaryError reports a salary that is not a positive finite amount.
func NewInvalidSalaryError(value any) error {
	return &ValidationError{Field: "salário", Value: value, Reason: "must be a positive finite amount"}
}

// NewNonPositiveSalaryError reports the salary of a multiplier discovery,
// which only has to be positive to divide by.
func NewNonPositiveSalaryError(value any) error {
	return &ValidationError{Field: "salário", Value: value, Reason: "must be positive"}
}

// NewInvalidPeriodError reports a month count outside 1..12 or not integral.
func NewInvalidPeriodError(value any) error {
	return &ValidationError{Field: "meses trabalhados", Value: value, Reason: "must be an integer between 1 and 12"}
}

// NewInvalidInstallmentError reports an unrecognized installment selector.
func NewInvalidInstallmentError(value string) error {
	return &ValidationError{Field: "parcela", Value: value, Reason: "must be one of total, primeira, segunda"}
}

// NewInvalidApportionmentError reports a negative observed installment amount.
func NewInvalidApportionmentError(field string, value any) error {
	return &ValidationError{Field: field, Value: value, Reason: "must be zero or a positive finite amount"}
}
