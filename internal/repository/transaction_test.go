package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillabooks/gorillabooks/internal/domain"
	"github.com/gorillabooks/gorillabooks/internal/repository"
	"github.com/gorillabooks/gorillabooks/internal/testutil"
)

func TestTransactionRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "books@test.com", "Books")

	cash := testutil.Debit(t, domain.CategoryAssets, "Cash", "500.00")
	cash.Vendor = "Acme Corp"
	cash.Tags = []string{"q1", "walk-in"}
	cash.Notes = "paid at counter"
	revenue := testutil.Credit(t, domain.CategoryRevenue, "Product Revenue", "500.00")

	tx := testutil.Transaction(t, user.ID, "2026-01-05", "cash sale", cash, revenue)
	require.NoError(t, repo.Create(ctx, tx))

	got, err := repo.Get(ctx, tx.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, "cash sale", got.Description)
	assert.Equal(t, "2026-01-05", got.Date.Format("2006-01-02"))
	require.Len(t, got.Entries, 2)

	// entries come back in submitted order
	assert.Equal(t, cash.ID, got.Entries[0].ID)
	assert.Equal(t, domain.EntryTypeDebit, got.Entries[0].Type)
	assert.True(t, got.Entries[0].Amount.Equal(cash.Amount))
	assert.Equal(t, "Acme Corp", got.Entries[0].Vendor)
	assert.Equal(t, []string{"q1", "walk-in"}, got.Entries[0].Tags)
	assert.Equal(t, "paid at counter", got.Entries[0].Notes)

	assert.Equal(t, revenue.ID, got.Entries[1].ID)
	assert.Empty(t, got.Entries[1].Vendor)
	assert.Empty(t, got.Entries[1].Tags)
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "books@test.com", "Books")

	older := testutil.Transaction(t, user.ID, "2026-01-05", "older",
		testutil.Debit(t, domain.CategoryAssets, "Cash", "10"),
		testutil.Credit(t, domain.CategoryRevenue, "Other Income", "10"),
	)
	newer := testutil.Transaction(t, user.ID, "2026-02-05", "newer",
		testutil.Debit(t, domain.CategoryExpenses, "Rent", "20"),
		testutil.Credit(t, domain.CategoryAssets, "Cash", "20"),
	)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	txs, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, newer.ID, txs[0].ID)
	assert.Equal(t, older.ID, txs[1].ID)
	assert.Len(t, txs[0].Entries, 2)
	assert.Len(t, txs[1].Entries, 2)
}

func TestListByUserEmptyForNewUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	user := testutil.SeedTestUser(t, db, "empty@test.com", "Empty")

	txs, err := repo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestGetScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	owner := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	other := testutil.SeedTestUser(t, db, "other@test.com", "Other")

	tx := testutil.Transaction(t, owner.ID, "2026-01-05", "private",
		testutil.Debit(t, domain.CategoryAssets, "Cash", "10"),
		testutil.Credit(t, domain.CategoryRevenue, "Other Income", "10"),
	)
	require.NoError(t, repo.Create(ctx, tx))

	_, err := repo.Get(ctx, tx.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "someone else's id looks missing, not forbidden")

	_, err = repo.Get(ctx, uuid.New(), owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovesEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	owner := testutil.SeedTestUser(t, db, "owner@test.com", "Owner")
	other := testutil.SeedTestUser(t, db, "other@test.com", "Other")

	tx := testutil.Transaction(t, owner.ID, "2026-01-05", "doomed",
		testutil.Debit(t, domain.CategoryAssets, "Cash", "10"),
		testutil.Credit(t, domain.CategoryRevenue, "Other Income", "10"),
	)
	require.NoError(t, repo.Create(ctx, tx))

	err := repo.Delete(ctx, tx.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cannot delete across users")
	assert.Equal(t, 2, testutil.CountEntries(t, db, tx.ID))

	require.NoError(t, repo.Delete(ctx, tx.ID, owner.ID))
	assert.Equal(t, 0, testutil.CountEntries(t, db, tx.ID), "entries cascade")

	err = repo.Delete(ctx, tx.ID, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second delete finds nothing")
}
