package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnbalanced indicates a transaction whose split values do not sum to zero.
var ErrUnbalanced = errors.New("transaction splits do not balance to zero")

// ErrInsufficientSplits indicates a transaction with fewer than two account-bound splits.
var ErrInsufficientSplits = errors.New("transaction must have at least two splits referencing accounts")

// ErrStaleVersion indicates an optimistic-concurrency conflict: the record the
// caller read was replaced by a concurrent write. The caller must reload and
// re-apply or abandon the edit.
var ErrStaleVersion = errors.New("record changed since it was read")

// ErrAmountMismatch indicates a reconciliation selection that does not match
// the statement balance exactly.
var ErrAmountMismatch = errors.New("selected splits do not match the statement balance")

// ErrSplitAlreadyReconciled indicates an attempt to act on a split already in
// the terminal reconciled state.
var ErrSplitAlreadyReconciled = errors.New("split is already reconciled")

// ErrPartialCompletion indicates that completing a reconciliation session was
// rejected as a whole because not every selected split could transition.
var ErrPartialCompletion = errors.New("reconciliation completion rejected, no splits were changed")

// UnbalancedError carries the exact non-zero residual of a transaction's
// split values. Always a user-correctable input error; never auto-corrected
// by rounding.
type UnbalancedError struct {
	Difference decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("transaction splits do not balance to zero: off by %s", e.Difference.String())
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalanced }

// StaleVersionError reports which version tokens disagreed.
type StaleVersionError struct {
	Stored   string
	Supplied string
}

func (e *StaleVersionError) Error() string {
	return fmt.Sprintf("record changed since it was read: stored version %s, supplied %s", e.Stored, e.Supplied)
}

func (e *StaleVersionError) Unwrap() error { return ErrStaleVersion }

// AmountMismatchError carries the exact gap between the selected sum plus
// prior reconciled balance and the statement target.
type AmountMismatchError struct {
	Difference decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("selected splits do not match the statement balance: off by %s", e.Difference.String())
}

func (e *AmountMismatchError) Unwrap() error { return ErrAmountMismatch }

// AppError wraps lower-level failures with an HTTP-ish status code for the
// handler boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
