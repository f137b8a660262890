package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category sentinels. Structured errors below unwrap to exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violated")
)

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrForbidden              = errors.New("forbidden")
	ErrNoValidPricing         = errors.New("at least one item must have a positive price and quantity")
	ErrNegativeValue          = errors.New("price and quantity must not be negative")
	ErrMissingReason          = errors.New("rejection reason is required")
	ErrProductInactive        = errors.New("product is inactive")
	ErrIncompleteCustomerInfo = errors.New("customer information is incomplete for an official invoice")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrEmptyOrder             = errors.New("order must contain at least one item")
	ErrNotDealer              = errors.New("customer is not a dealer")
)

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Reason error
	Fields []FieldError
}

// Validation builds a ValidationError with an optional specific reason.
func Validation(reason error, fields ...FieldError) *ValidationError {
	return &ValidationError{Reason: reason, Fields: fields}
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Reason != nil {
		b.WriteString(e.Reason.Error())
	} else {
		b.WriteString(ErrValidation.Error())
	}
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(" ")
		b.WriteString(f.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Reason}
}

// StateError reports an operation attempted from the wrong order status.
type StateError struct {
	Operation string
	Current   string
	Required  []string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s order in status %q: requires %s", e.Operation, e.Current, strings.Join(e.Required, " or "))
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// BusinessRuleError reports a rule violation, optionally listing missing fields.
type BusinessRuleError struct {
	Reason        error
	MissingFields []string
}

func (e *BusinessRuleError) Error() string {
	msg := ErrBusinessRule.Error()
	if e.Reason != nil {
		msg = e.Reason.Error()
	}
	if len(e.MissingFields) > 0 {
		msg += ": missing " + strings.Join(e.MissingFields, ", ")
	}
	return msg
}

func (e *BusinessRuleError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrBusinessRule}
	}
	return []error{ErrBusinessRule, e.Reason}
}
