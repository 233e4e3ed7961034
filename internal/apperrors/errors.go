package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUpstream indicates a failure in an external collaborator (e.g. the courier service).
var ErrUpstream = errors.New("upstream service error")

// ErrTransient indicates an atomic unit aborted due to contention or timeout.
// Retrying the whole operation is safe.
var ErrTransient = errors.New("transient store error")

// ErrInternal is a generic internal failure that hides storage-engine details.
var ErrInternal = errors.New("internal error")

// InsufficientStockError rejects a stock decrement that would drive stock negative.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// NewInsufficientStock builds an InsufficientStockError for the given product.
func NewInsufficientStock(productID string) error {
	return &InsufficientStockError{ProductID: productID}
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// InsufficientFundsError rejects a balance decrement the source account cannot cover.
type InsufficientFundsError struct {
	AccountID string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %s", e.AccountID)
}

// NewInsufficientFunds builds an InsufficientFundsError for the given account.
func NewInsufficientFunds(accountID string) error {
	return &InsufficientFundsError{AccountID: accountID}
}

// IsInsufficientFunds reports whether err is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}

// AppError wraps lower-level failures with an HTTP-ish status code and a message
// that is safe to surface. The wrapped error is kept for errors.Is/As chains.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
