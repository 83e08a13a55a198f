package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillabooks/gorillabooks/internal/auth"
	"github.com/gorillabooks/gorillabooks/internal/domain"
	"github.com/gorillabooks/gorillabooks/internal/ledger"
	"github.com/gorillabooks/gorillabooks/internal/service"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type mockTransactionService struct {
	createFn func(ctx context.Context, userID uuid.UUID, req service.CreateRequest) (*domain.Transaction, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	getFn    func(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id, userID uuid.UUID) error
	flatFn   func(ctx context.Context, userID uuid.UUID, from, to string) ([]ledger.FlatLine, error)
}

func (m *mockTransactionService) Create(ctx context.Context, userID uuid.UUID, req service.CreateRequest) (*domain.Transaction, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockTransactionService) List(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	return m.listFn(ctx, userID)
}

func (m *mockTransactionService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	return m.getFn(ctx, id, userID)
}

func (m *mockTransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.deleteFn(ctx, id, userID)
}

func (m *mockTransactionService) FlatView(ctx context.Context, userID uuid.UUID, from, to string) ([]ledger.FlatLine, error) {
	return m.flatFn(ctx, userID, from, to)
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(auth.ContextWithUserID(r.Context(), userID))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

const validCreateBody = `{
	"date": "2026-01-05",
	"description": "cash sale",
	"entries": [
		{"type": "debit", "category": "Assets", "account": "Cash", "amount": 500},
		{"type": "credit", "category": "Revenue", "account": "Product Revenue", "amount": 500}
	]
}`

func TestCreateTransactionHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       validCreateBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{"date": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "missing date",
			body:       `{"description": "x", "entries": []}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "bad date format",
			body:       `{"date": "05/01/2026", "description": "x", "entries": []}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "whitespace-only description",
			body:       `{"date": "2026-01-05", "description": "   ", "entries": []}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "empty transaction",
			body:       `{"date": "2026-01-05", "description": "x", "entries": []}`,
			createErr:  fmt.Errorf("Create: %w", domain.ErrEmptyTransaction),
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMPTY_TRANSACTION",
		},
		{
			name:       "unbalanced",
			body:       validCreateBody,
			createErr:  fmt.Errorf("Create: %w", &domain.UnbalancedError{Debits: amt("100"), Credits: amt("99.98")}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNBALANCED_TRANSACTION",
		},
		{
			name:       "entry error names the field",
			body:       validCreateBody,
			createErr:  fmt.Errorf("Create: %w", &domain.EntryError{Index: 1, Err: domain.ErrInvalidAccount}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ACCOUNT",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockTransactionService{
				createFn: func(_ context.Context, uid uuid.UUID, req service.CreateRequest) (*domain.Transaction, error) {
					if tc.createErr != nil {
						return nil, tc.createErr
					}
					assert.Equal(t, userID, uid)
					return &domain.Transaction{
						ID:          uuid.New(),
						UserID:      uid,
						Date:        req.Date,
						Description: req.Description,
					}, nil
				},
			}
			h := NewTransactionHandler(svc)

			w := httptest.NewRecorder()
			h.Create(w, authedRequest(http.MethodPost, "/api/v1/transactions", tc.body, userID))

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeResponse(t, w)

			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				assert.False(t, resp.Success)
				return
			}
			assert.True(t, resp.Success)
			assert.NotEmpty(t, w.Header().Get("Location"))
		})
	}
}

func TestCreateTransactionNamesBlankDescription(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{})

	body := `{"date": "2026-01-05", "description": "   ", "entries": []}`
	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/v1/transactions", body, uuid.New()))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)

	fields, ok := resp.Error.Details.([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Equal(t, "description", field["field"])
}

func TestCreateTransactionUnbalancedDetails(t *testing.T) {
	svc := &mockTransactionService{
		createFn: func(_ context.Context, _ uuid.UUID, _ service.CreateRequest) (*domain.Transaction, error) {
			return nil, fmt.Errorf("Create: %w", &domain.UnbalancedError{Debits: amt("100"), Credits: amt("99.98")})
		},
	}
	h := NewTransactionHandler(svc)

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/v1/transactions", validCreateBody, uuid.New()))

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)

	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "100.00", details["debits"])
	assert.Equal(t, "99.98", details["credits"])
	assert.Equal(t, "0.02", details["difference"])
}

func TestGetTransactionHandler(t *testing.T) {
	userID := uuid.New()
	txID := uuid.New()

	svc := &mockTransactionService{
		getFn: func(_ context.Context, id, uid uuid.UUID) (*domain.Transaction, error) {
			if id == txID && uid == userID {
				return &domain.Transaction{ID: txID, UserID: userID, Description: "found"}, nil
			}
			return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
		},
	}
	h := NewTransactionHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/transactions/{id}", h.Get)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/transactions/"+txID.String(), "", userID))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/transactions/"+uuid.NewString(), "", userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/transactions/not-a-uuid", "", userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteTransactionHandler(t *testing.T) {
	userID := uuid.New()
	txID := uuid.New()

	svc := &mockTransactionService{
		deleteFn: func(_ context.Context, id, _ uuid.UUID) error {
			if id == txID {
				return nil
			}
			return fmt.Errorf("Delete: %w", domain.ErrNotFound)
		},
	}
	h := NewTransactionHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/transactions/{id}", h.Delete)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/v1/transactions/"+txID.String(), "", userID))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/v1/transactions/"+uuid.NewString(), "", userID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlatHandler(t *testing.T) {
	userID := uuid.New()

	svc := &mockTransactionService{
		flatFn: func(_ context.Context, _ uuid.UUID, from, to string) ([]ledger.FlatLine, error) {
			assert.Equal(t, "2026-01-01", from)
			assert.Equal(t, "2026-01-31", to)
			return []ledger.FlatLine{{
				TransactionID: uuid.New(),
				Type:          ledger.FlatTypeIncome,
				Category:      "Product Revenue",
				Amount:        amt("500"),
			}}, nil
		},
	}
	h := NewTransactionHandler(svc)

	w := httptest.NewRecorder()
	h.Flat(w, authedRequest(http.MethodGet, "/api/v1/transactions/flat?from=2026-01-01&to=2026-01-31", "", userID))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestFlatHandlerRejectsBadDates(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{})

	w := httptest.NewRecorder()
	h.Flat(w, authedRequest(http.MethodGet, "/api/v1/transactions/flat?from=January", "", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestTransactionHandlersRequireAuth(t *testing.T) {
	h := NewTransactionHandler(&mockTransactionService{})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_TOKEN", resp.Error.Code)
}
