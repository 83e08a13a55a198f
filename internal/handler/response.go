package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// balanceDetails accompanies UNBALANCED_TRANSACTION so the client can show
// the user what failed to balance.
type balanceDetails struct {
	Debits     string `json:"debits"`
	Credits    string `json:"credits"`
	Difference string `json:"difference"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

// RespondDomainError translates a domain error into its HTTP shape.
// Unbalanced transactions include the computed totals, per-entry validation
// failures name the offending field, and unmapped errors are logged and
// surfaced as a generic 500.
func RespondDomainError(w http.ResponseWriter, err error) {
	var unbalanced *domain.UnbalancedError
	if errors.As(err, &unbalanced) {
		RespondAppError(w, ErrUnbalancedTransaction, balanceDetails{
			Debits:     unbalanced.Debits.StringFixed(2),
			Credits:    unbalanced.Credits.StringFixed(2),
			Difference: unbalanced.Difference().StringFixed(2),
		})
		return
	}

	var entryErr *domain.EntryError
	if errors.As(err, &entryErr) {
		appErr := appErrorFor(entryErr.Err)
		RespondAppError(w, appErr, []FieldError{{
			Field:   fmt.Sprintf("entries[%d].%s", entryErr.Index, entryFieldFor(entryErr.Err)),
			Message: appErr.Message,
		}})
		return
	}

	RespondAppError(w, appErrorFor(err), nil)
}

func appErrorFor(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		appErr = ErrInvalidAmount
	case errors.Is(err, domain.ErrInvalidCategory):
		appErr = ErrInvalidCategory
	case errors.Is(err, domain.ErrInvalidAccount):
		appErr = ErrInvalidAccount
	case errors.Is(err, domain.ErrInvalidEntryType):
		appErr = ErrInvalidEntryType
	case errors.Is(err, domain.ErrEmptyTransaction):
		appErr = ErrEmptyTransaction
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		appErr = ErrUnbalancedTransaction
	case errors.Is(err, domain.ErrEmailTaken):
		appErr = ErrEmailTaken
	case errors.Is(err, domain.ErrInvalidRequest):
		appErr = ErrInvalidRequest
	default:
		slog.Error("unhandled domain error", "error", err)
		appErr = ErrInternalError
	}
	return appErr
}

func entryFieldFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "amount"
	case errors.Is(err, domain.ErrInvalidCategory):
		return "category"
	case errors.Is(err, domain.ErrInvalidAccount):
		return "account"
	case errors.Is(err, domain.ErrInvalidEntryType):
		return "type"
	default:
		return "entry"
	}
}
