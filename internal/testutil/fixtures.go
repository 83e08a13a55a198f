package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

// SeedTestUser inserts a user directly, bypassing the signup path.
func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

// Amount parses a decimal literal, failing the test on a typo.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return d
}

// Debit builds a debit entry against the given category and account.
func Debit(t *testing.T, category domain.Category, account, amount string) domain.Entry {
	t.Helper()
	return domain.Entry{
		ID:       uuid.New(),
		Type:     domain.EntryTypeDebit,
		Category: category,
		Account:  account,
		Amount:   Amount(t, amount),
	}
}

// Credit builds a credit entry against the given category and account.
func Credit(t *testing.T, category domain.Category, account, amount string) domain.Entry {
	t.Helper()
	return domain.Entry{
		ID:       uuid.New(),
		Type:     domain.EntryTypeCredit,
		Category: category,
		Account:  account,
		Amount:   Amount(t, amount),
	}
}

// Transaction builds a balanced-or-not transaction for the given user. The
// date is an ISO date string.
func Transaction(t *testing.T, userID uuid.UUID, date, description string, entries ...domain.Entry) *domain.Transaction {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        day,
		Description: description,
		Entries:     entries,
		CreatedAt:   time.Now().UTC(),
	}
}

// CountEntries reports how many entry rows a transaction has in the database.
func CountEntries(t *testing.T, db *sql.DB, transactionID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM entries WHERE transaction_id = $1`, transactionID).Scan(&count)
	if err != nil {
		t.Fatalf("count entries for transaction %s: %v", transactionID, err)
	}
	return count
}
