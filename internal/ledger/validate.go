// Package ledger holds the bookkeeping core: entry validation, the
// debit/credit balance check, and the pure aggregation that backs every
// report. Nothing in this package touches storage or the network.
package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

// EntryInput is a candidate entry as submitted by a client, before
// normalization.
type EntryInput struct {
	Type     string
	Category string
	Account  string
	Amount   decimal.Decimal
	Vendor   string
	Tags     string // comma-separated
	Notes    string
}

// ValidateEntry checks a candidate entry and returns its normalized form.
// Checks run in a fixed order and stop at the first failure: amount, category,
// account, entry type. Amounts must be positive and no finer than a cent;
// the amount column is NUMERIC(14,2), so anything finer would be silently
// rounded on insert and could unbalance the stored transaction. String fields
// are trimmed and tags are split on commas with empty items dropped.
func ValidateEntry(in EntryInput) (domain.Entry, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Entry{}, fmt.Errorf("ValidateEntry: %w", domain.ErrInvalidAmount)
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return domain.Entry{}, fmt.Errorf("ValidateEntry: %s: %w", in.Amount, domain.ErrInvalidAmount)
	}

	category := domain.Category(strings.TrimSpace(in.Category))
	if !category.IsValid() {
		return domain.Entry{}, fmt.Errorf("ValidateEntry: %q: %w", in.Category, domain.ErrInvalidCategory)
	}

	account := strings.TrimSpace(in.Account)
	if !domain.IsValidAccount(category, account) {
		return domain.Entry{}, fmt.Errorf("ValidateEntry: %q/%q: %w", category, account, domain.ErrInvalidAccount)
	}

	entryType := domain.EntryType(strings.TrimSpace(in.Type))
	if !entryType.IsValid() {
		return domain.Entry{}, fmt.Errorf("ValidateEntry: %q: %w", in.Type, domain.ErrInvalidEntryType)
	}

	return domain.Entry{
		ID:       uuid.New(),
		Type:     entryType,
		Category: category,
		Account:  account,
		Amount:   in.Amount,
		Vendor:   strings.TrimSpace(in.Vendor),
		Tags:     splitTags(in.Tags),
		Notes:    strings.TrimSpace(in.Notes),
	}, nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
