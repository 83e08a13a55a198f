package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorillabooks/gorillabooks/internal/auth"
	"github.com/gorillabooks/gorillabooks/internal/domain"
	"github.com/gorillabooks/gorillabooks/internal/ledger"
	"github.com/gorillabooks/gorillabooks/internal/logging"
	"github.com/gorillabooks/gorillabooks/internal/service"
)

const dateLayout = "2006-01-02"

type transactionService interface {
	Create(ctx context.Context, userID uuid.UUID, req service.CreateRequest) (*domain.Transaction, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	FlatView(ctx context.Context, userID uuid.UUID, from, to string) ([]ledger.FlatLine, error)
}

type TransactionHandler struct {
	transactions transactionService
}

func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type entryRequest struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Account  string          `json:"account"`
	Amount   decimal.Decimal `json:"amount"`
	Vendor   string          `json:"vendor"`
	Tags     string          `json:"tags"`
	Notes    string          `json:"notes"`
}

type createTransactionRequest struct {
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Entries     []entryRequest `json:"entries"`
}

func (r createTransactionRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	} else if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be an ISO date (YYYY-MM-DD)"})
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	return errs
}

type entryDTO struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Account  string    `json:"account"`
	Amount   string    `json:"amount"`
	Vendor   string    `json:"vendor,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

type transactionDTO struct {
	ID          uuid.UUID  `json:"id"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Entries     []entryDTO `json:"entries"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	dto := transactionDTO{
		ID:          t.ID,
		Date:        t.Date.Format(dateLayout),
		Description: t.Description,
		Entries:     make([]entryDTO, len(t.Entries)),
		CreatedAt:   t.CreatedAt,
	}
	for i, e := range t.Entries {
		dto.Entries[i] = entryDTO{
			ID:       e.ID,
			Type:     string(e.Type),
			Category: string(e.Category),
			Account:  e.Account,
			Amount:   e.Amount.StringFixed(2),
			Vendor:   e.Vendor,
			Tags:     e.Tags,
			Notes:    e.Notes,
		}
	}
	return dto
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}
	date, _ := time.Parse(dateLayout, req.Date)

	entries := make([]ledger.EntryInput, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = ledger.EntryInput{
			Type:     e.Type,
			Category: e.Category,
			Account:  e.Account,
			Amount:   e.Amount,
			Vendor:   e.Vendor,
			Tags:     e.Tags,
			Notes:    e.Notes,
		}
	}

	t, err := h.transactions.Create(r.Context(), userID, service.CreateRequest{
		Date:        date,
		Description: req.Description,
		Entries:     entries,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("transaction creation rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/transactions/%s", t.ID))
	RespondSuccess(w, http.StatusCreated, toTransactionDTO(t))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	txs, err := h.transactions.List(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(txs))
	for i := range txs {
		dtos[i] = toTransactionDTO(&txs[i])
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	t, err := h.transactions.Get(r.Context(), id, userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(t))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	if err := h.transactions.Delete(r.Context(), id, userID); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

type flatLineDTO struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Amount        string    `json:"amount"`
	Vendor        string    `json:"vendor,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
}

// Flat serves the simple income/expense projection of the ledger.
func (h *TransactionHandler) Flat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	from, to, appErr := dateWindowFromQuery(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	lines, err := h.transactions.FlatView(r.Context(), userID, from, to)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to build flat view", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]flatLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = flatLineDTO{
			TransactionID: l.TransactionID,
			Date:          l.Date.Format(dateLayout),
			Description:   l.Description,
			Type:          string(l.Type),
			Category:      l.Category,
			Amount:        l.Amount.StringFixed(2),
			Vendor:        l.Vendor,
			Tags:          l.Tags,
		}
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

// dateWindowFromQuery reads optional from/to ISO-date query params.
func dateWindowFromQuery(r *http.Request) (from, to string, appErr *AppError) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	for _, v := range []string{from, to} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return "", "", ErrInvalidRequest
		}
	}
	return from, to, nil
}
