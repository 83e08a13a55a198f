package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillabooks/gorillabooks/internal/domain"
	"github.com/gorillabooks/gorillabooks/internal/repository"
	"github.com/gorillabooks/gorillabooks/internal/testutil"
)

func TestUserCreateAndFetch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{
		ID:           uuid.New(),
		Email:        "owner@shop.com",
		Name:         "Shop Owner",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, u.Name, byID.Name)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{
		ID:           uuid.New(),
		Email:        "taken@shop.com",
		Name:         "First",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, first))

	dupe := &domain.User{
		ID:           uuid.New(),
		Email:        "taken@shop.com",
		Name:         "Second",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	assert.ErrorIs(t, repo.Create(ctx, dupe), domain.ErrEmailTaken)
}

func TestUserNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@shop.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
