package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// Entry is one debit or credit line of a transaction. Entries are immutable
// once persisted and owned exclusively by their parent transaction.
type Entry struct {
	ID       uuid.UUID
	Type     EntryType
	Category Category
	Account  string
	Amount   decimal.Decimal
	Vendor   string
	Tags     []string
	Notes    string
}
