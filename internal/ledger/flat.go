package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

type FlatType string

const (
	FlatTypeIncome  FlatType = "income"
	FlatTypeExpense FlatType = "expense"
)

// FlatLine is the simple income/expense view of one ledger entry, for UIs that
// do not speak double-entry. The GAAP model stays canonical; this is a
// read-side projection only.
type FlatLine struct {
	TransactionID uuid.UUID
	Date          time.Time
	Description   string
	Type          FlatType
	Category      string // the GAAP sub-account
	Amount        decimal.Decimal
	Vendor        string
	Tags          []string
}

// FlattenTransactions projects Revenue entries as income and Expenses entries
// as expense, in transaction order. An entry on the abnormal side of its
// category (a Revenue debit, an Expenses credit) projects with a negated
// amount, so refunds and corrections show up as reversals rather than
// disappearing. Entries in the balance-sheet categories carry no
// income/expense meaning and are skipped.
func FlattenTransactions(transactions []domain.Transaction) []FlatLine {
	var lines []FlatLine
	for _, tx := range transactions {
		for _, e := range tx.Entries {
			var flatType FlatType
			switch e.Category {
			case domain.CategoryRevenue:
				flatType = FlatTypeIncome
			case domain.CategoryExpenses:
				flatType = FlatTypeExpense
			default:
				continue
			}

			amount := e.Amount
			normalSide := domain.EntryTypeCredit
			if e.Category.DebitNormal() {
				normalSide = domain.EntryTypeDebit
			}
			if e.Type != normalSide {
				amount = amount.Neg()
			}

			lines = append(lines, FlatLine{
				TransactionID: tx.ID,
				Date:          tx.Date,
				Description:   tx.Description,
				Type:          flatType,
				Category:      e.Account,
				Amount:        amount,
				Vendor:        e.Vendor,
				Tags:          e.Tags,
			})
		}
	}
	return lines
}
