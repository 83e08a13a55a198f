package ledger

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

func debit(category domain.Category, account, amount string) domain.Entry {
	return domain.Entry{
		ID:       uuid.New(),
		Type:     domain.EntryTypeDebit,
		Category: category,
		Account:  account,
		Amount:   amt(amount),
	}
}

func credit(category domain.Category, account, amount string) domain.Entry {
	return domain.Entry{
		ID:       uuid.New(),
		Type:     domain.EntryTypeCredit,
		Category: category,
		Account:  account,
		Amount:   amt(amount),
	}
}

func TestCheckBalance(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
		wantErr error
	}{
		{
			name:    "no entries",
			entries: nil,
			wantErr: domain.ErrEmptyTransaction,
		},
		{
			name: "simple balanced pair",
			entries: []domain.Entry{
				debit(domain.CategoryAssets, "Cash", "500"),
				credit(domain.CategoryRevenue, "Product Revenue", "500"),
			},
		},
		{
			name: "one debit split across two credits",
			entries: []domain.Entry{
				debit(domain.CategoryAssets, "Cash", "100"),
				credit(domain.CategoryRevenue, "Product Revenue", "60"),
				credit(domain.CategoryRevenue, "Service Revenue", "40"),
			},
		},
		{
			name: "off by two cents",
			entries: []domain.Entry{
				debit(domain.CategoryAssets, "Cash", "100"),
				credit(domain.CategoryRevenue, "Product Revenue", "99.98"),
			},
			wantErr: domain.ErrUnbalancedTransaction,
		},
		{
			name: "off by exactly the tolerance",
			entries: []domain.Entry{
				debit(domain.CategoryAssets, "Cash", "100"),
				credit(domain.CategoryRevenue, "Product Revenue", "99.99"),
			},
			wantErr: domain.ErrUnbalancedTransaction,
		},
		{
			name: "within tolerance",
			entries: []domain.Entry{
				debit(domain.CategoryAssets, "Cash", "100"),
				credit(domain.CategoryRevenue, "Product Revenue", "99.995"),
			},
		},
		{
			name: "grossly unbalanced",
			entries: []domain.Entry{
				debit(domain.CategoryExpenses, "Rent", "1200"),
			},
			wantErr: domain.ErrUnbalancedTransaction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckBalance(tc.entries)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckBalanceReportsTotals(t *testing.T) {
	err := CheckBalance([]domain.Entry{
		debit(domain.CategoryAssets, "Cash", "100"),
		credit(domain.CategoryRevenue, "Product Revenue", "99.98"),
	})
	require.Error(t, err)

	var unbalanced *domain.UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Debits.Equal(amt("100")))
	assert.True(t, unbalanced.Credits.Equal(amt("99.98")))
	assert.True(t, unbalanced.Difference().Equal(amt("0.02")))
}

func TestSumEntries(t *testing.T) {
	totals := SumEntries([]domain.Entry{
		debit(domain.CategoryAssets, "Cash", "150"),
		debit(domain.CategoryExpenses, "Rent", "50"),
		credit(domain.CategoryRevenue, "Product Revenue", "175"),
	})

	assert.True(t, totals.Debits.Equal(amt("200")))
	assert.True(t, totals.Credits.Equal(amt("175")))
}
