package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gorillabooks/gorillabooks/internal/domain"
	"github.com/gorillabooks/gorillabooks/internal/ledger"
	"github.com/gorillabooks/gorillabooks/internal/logging"
)

type transactionStore interface {
	Create(ctx context.Context, t *domain.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TransactionService owns the write path (validate, balance-check, persist)
// and the read-side projections. All operations are scoped to one user.
type TransactionService struct {
	store transactionStore
}

func NewTransactionService(store transactionStore) *TransactionService {
	return &TransactionService{store: store}
}

// CreateRequest is a candidate transaction before validation.
type CreateRequest struct {
	Date        time.Time
	Description string
	Entries     []ledger.EntryInput
}

// Create validates, balance-checks, and persists a transaction atomically.
// Nothing is written unless every entry validates and debits equal credits.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("Create: description: %w", domain.ErrInvalidRequest)
	}
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("Create: %w", domain.ErrEmptyTransaction)
	}

	entries := make([]domain.Entry, 0, len(req.Entries))
	for i, in := range req.Entries {
		e, err := ledger.ValidateEntry(in)
		if err != nil {
			return nil, fmt.Errorf("Create: %w", &domain.EntryError{Index: i, Err: err})
		}
		entries = append(entries, e)
	}

	if err := ledger.CheckBalance(entries); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	t := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
		Entries:     entries,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	totals := ledger.SumEntries(entries)
	log.Info("transaction recorded",
		"transaction_id", t.ID,
		"user_id", userID,
		"entries", len(entries),
		"total_debits", totals.Debits.StringFixed(2),
	)

	return t, nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return txs, nil
}

func (s *TransactionService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	t, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	logging.FromContext(ctx).Info("transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}

// windowed loads the user's transactions restricted to an optional ISO-date
// window. Reports recompute from this list on every call; nothing is cached.
func (s *TransactionService) windowed(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.Transaction, error) {
	txs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ledger.FilterByDateRange(txs, from, to), nil
}

func (s *TransactionService) TrialBalance(ctx context.Context, userID uuid.UUID, from, to string) (ledger.TrialBalance, error) {
	txs, err := s.windowed(ctx, userID, from, to)
	if err != nil {
		return ledger.TrialBalance{}, fmt.Errorf("TrialBalance: %w", err)
	}
	return ledger.ComputeTrialBalance(txs), nil
}

func (s *TransactionService) BalanceSheet(ctx context.Context, userID uuid.UUID, from, to string) (ledger.BalanceSheet, error) {
	txs, err := s.windowed(ctx, userID, from, to)
	if err != nil {
		return ledger.BalanceSheet{}, fmt.Errorf("BalanceSheet: %w", err)
	}
	return ledger.ComputeBalanceSheet(txs), nil
}

func (s *TransactionService) IncomeStatement(ctx context.Context, userID uuid.UUID, from, to string) (ledger.IncomeStatement, error) {
	txs, err := s.windowed(ctx, userID, from, to)
	if err != nil {
		return ledger.IncomeStatement{}, fmt.Errorf("IncomeStatement: %w", err)
	}
	return ledger.ComputeIncomeStatement(txs), nil
}

func (s *TransactionService) Dashboard(ctx context.Context, userID uuid.UUID, from, to string) (ledger.DashboardTotals, error) {
	txs, err := s.windowed(ctx, userID, from, to)
	if err != nil {
		return ledger.DashboardTotals{}, fmt.Errorf("Dashboard: %w", err)
	}
	return ledger.ComputeDashboard(txs), nil
}

func (s *TransactionService) FlatView(ctx context.Context, userID uuid.UUID, from, to string) ([]ledger.FlatLine, error) {
	txs, err := s.windowed(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("FlatView: %w", err)
	}
	return ledger.FlattenTransactions(txs), nil
}
