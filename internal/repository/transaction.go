package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

const entryColumns = `id, transaction_id, entry_type, category, account, amount, vendor, tags, notes`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create persists a transaction and all of its entries in one database
// transaction: either everything is stored or nothing is.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Date, t.Description, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: transaction: %w", err)
	}

	for i, e := range t.Entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entries (id, transaction_id, position, entry_type, category, account, amount, vendor, tags, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, t.ID, i, e.Type, e.Category, e.Account, e.Amount,
			nullableString(e.Vendor), pq.Array(e.Tags), nullableString(e.Notes),
		)
		if err != nil {
			return fmt.Errorf("Create: entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

// ListByUser returns the user's transactions ordered by date descending, then
// creation time descending, with entries in their submitted order.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, description, created_at FROM transactions
		WHERE user_id = $1 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	var (
		txs   []domain.Transaction
		index = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: scan: %w", err)
		}
		index[t.ID] = len(txs)
		txs = append(txs, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows: %w", err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	entryRows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries e
		WHERE transaction_id IN (SELECT id FROM transactions WHERE user_id = $1)
		ORDER BY transaction_id, position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		e, txID, err := scanEntry(entryRows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: scan entry: %w", err)
		}
		if i, ok := index[txID]; ok {
			txs[i].Entries = append(txs[i].Entries, *e)
		}
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: entry rows: %w", err)
	}

	return txs, nil
}

// Get fetches one transaction scoped to its owner. A missing id and an id
// owned by someone else are both ErrNotFound; callers cannot tell them apart.
func (r *TransactionRepository) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, description, created_at FROM transactions
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	entryRows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE transaction_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		e, _, err := scanEntry(entryRows)
		if err != nil {
			return nil, fmt.Errorf("Get: scan entry: %w", err)
		}
		t.Entries = append(t.Entries, *e)
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("Get: entry rows: %w", err)
	}

	return t, nil
}

// Delete removes a transaction scoped to its owner; entries go with it via
// cascade. Missing and not-owned ids are both ErrNotFound.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := s.Scan(&t.ID, &t.UserID, &t.Date, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanEntry(s scanner) (*domain.Entry, uuid.UUID, error) {
	var (
		e      domain.Entry
		txID   uuid.UUID
		vendor sql.NullString
		notes  sql.NullString
		tags   pq.StringArray
	)
	err := s.Scan(&e.ID, &txID, &e.Type, &e.Category, &e.Account, &e.Amount, &vendor, &tags, &notes)
	if err != nil {
		return nil, uuid.Nil, err
	}
	e.Vendor = vendor.String
	e.Notes = notes.String
	if len(tags) > 0 {
		e.Tags = []string(tags)
	}
	return &e, txID, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
