package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidAmount         = errors.New("amount must be a positive number with at most two decimal places")
	ErrInvalidCategory       = errors.New("unknown category")
	ErrInvalidAccount        = errors.New("account does not belong to category")
	ErrInvalidEntryType      = errors.New("entry type must be debit or credit")
	ErrEmptyTransaction      = errors.New("transaction has no entries")
	ErrUnbalancedTransaction = errors.New("debits do not equal credits")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidRequest        = errors.New("invalid request")
)

// UnbalancedError carries the computed totals so callers can show the user
// what failed to balance. It matches ErrUnbalancedTransaction under errors.Is.
type UnbalancedError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("debits (%s) do not equal credits (%s), difference %s",
		e.Debits.StringFixed(2), e.Credits.StringFixed(2), e.Difference().StringFixed(2))
}

func (e *UnbalancedError) Is(target error) bool {
	return target == ErrUnbalancedTransaction
}

// Difference returns |debits - credits|.
func (e *UnbalancedError) Difference() decimal.Decimal {
	return e.Debits.Sub(e.Credits).Abs()
}

// EntryError pins a validation failure to one entry of a submitted
// transaction so the caller can report which line needs fixing.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
