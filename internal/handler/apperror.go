package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

// Validation failures map to 400, auth to 401, missing records to 404, and
// anything unexpected to a generic 500 that leaks no internals.
var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount         = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive number with at most two decimal places"}
	ErrInvalidCategory       = &AppError{http.StatusBadRequest, "INVALID_CATEGORY", "Category must be one of Assets, Liabilities, Equity, Revenue, Expenses"}
	ErrInvalidAccount        = &AppError{http.StatusBadRequest, "INVALID_ACCOUNT", "Account does not belong to the given category"}
	ErrInvalidEntryType      = &AppError{http.StatusBadRequest, "INVALID_ENTRY_TYPE", "Entry type must be debit or credit"}
	ErrEmptyTransaction      = &AppError{http.StatusBadRequest, "EMPTY_TRANSACTION", "Transaction must contain at least one entry"}
	ErrUnbalancedTransaction = &AppError{http.StatusBadRequest, "UNBALANCED_TRANSACTION", "Debits must equal credits"}
	ErrEmailTaken            = &AppError{http.StatusConflict, "EMAIL_TAKEN", "Email already registered"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
)
