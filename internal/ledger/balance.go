package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

// balanceTolerance absorbs floating-point drift in amounts recorded by older
// clients. Amounts are decimals internally, so exactly balanced transactions
// compare equal; the tolerance is kept for compatibility, not correctness.
var balanceTolerance = decimal.RequireFromString("0.01")

// Totals are the summed debit and credit sides of a set of entries.
type Totals struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// SumEntries computes the debit and credit totals of a set of entries.
func SumEntries(entries []domain.Entry) Totals {
	t := Totals{Debits: decimal.Zero, Credits: decimal.Zero}
	for _, e := range entries {
		if e.Type == domain.EntryTypeDebit {
			t.Debits = t.Debits.Add(e.Amount)
		} else {
			t.Credits = t.Credits.Add(e.Amount)
		}
	}
	return t
}

// CheckBalance verifies that a transaction's entries balance: the set is
// non-empty and |sum(debits) - sum(credits)| < 0.01. It must pass before a
// transaction is persisted; an unbalanced transaction is never stored.
func CheckBalance(entries []domain.Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("CheckBalance: %w", domain.ErrEmptyTransaction)
	}

	t := SumEntries(entries)
	if t.Debits.Sub(t.Credits).Abs().GreaterThanOrEqual(balanceTolerance) {
		return fmt.Errorf("CheckBalance: %w", &domain.UnbalancedError{
			Debits:  t.Debits,
			Credits: t.Credits,
		})
	}
	return nil
}
