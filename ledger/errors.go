package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers can separate data errors from programming errors with errors.Is.
var (
	ErrUninitialized     = errors.New("uninitialized amount")
	ErrCommodityMismatch = errors.New("commodity mismatch")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDivideByZero      = errors.New("divide by zero")
	ErrGraphInvariant    = errors.New("price graph invariant violated")
	ErrParse             = errors.New("parse error")
	ErrInvalid           = errors.New("invalid value")
)

// AmountError is returned by amount arithmetic, queries and parsing.
type AmountError struct {
	Kind    error
	Message string
}

func (e *AmountError) Error() string {
	return e.Message
}

func (e *AmountError) Unwrap() error {
	return e.Kind
}

func (e *AmountError) GetKind() error {
	return e.Kind
}

func amountError(kind error, format string, args ...any) *AmountError {
	return &AmountError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ArgumentError is returned when a required argument is missing.
type ArgumentError struct {
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q must not be nil", e.Name)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// GraphError reports a violated price graph invariant, such as pricing a
// commodity in itself.
type GraphError struct {
	Op     string
	Source string
	Target string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s: source commodity '%s' must differ from target '%s'", e.Op, e.Source, e.Target)
}

func (e *GraphError) Unwrap() error {
	return ErrGraphInvariant
}

// ParseError is returned for malformed amount, symbol, annotation and price
// directive text.
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Input)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func (e *ParseError) GetInput() string {
	return e.Input
}

func parseError(input, message string) *ParseError {
	return &ParseError{Input: input, Message: message}
}

// Messages for operations on uninitialized amounts, indexed by which operand
// is missing: left only, right only, both.
type uninitMessages [3]string

var (
	uninitAdd      = uninitMessages{"Cannot add an amount to an uninitialized amount", "Cannot add an uninitialized amount to an amount", "Cannot add two uninitialized amounts"}
	uninitSubtract = uninitMessages{"Cannot subtract an amount from an uninitialized amount", "Cannot subtract an uninitialized amount from an amount", "Cannot subtract two uninitialized amounts"}
	uninitMultiply = uninitMessages{"Cannot multiply an uninitialized amount by an amount", "Cannot multiply an amount by an uninitialized amount", "Cannot multiply two uninitialized amounts"}
	uninitDivide   = uninitMessages{"Cannot divide an uninitialized amount by an amount", "Cannot divide an amount by an uninitialized amount", "Cannot divide two uninitialized amounts"}
	uninitCompare  = uninitMessages{"Cannot compare an uninitialized amount to an amount", "Cannot compare an amount to an uninitialized amount", "Cannot compare two uninitialized amounts"}
)

func (m uninitMessages) check(left, right *Amount) error {
	l, r := left.IsEmpty(), right.IsEmpty()
	switch {
	case l && r:
		return amountError(ErrUninitialized, "%s", m[2])
	case l:
		return amountError(ErrUninitialized, "%s", m[0])
	case r:
		return amountError(ErrUninitialized, "%s", m[1])
	}
	return nil
}

func uninitialized(message string) error {
	return amountError(ErrUninitialized, "%s", message)
}
