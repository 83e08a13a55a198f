package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

// AccountBalance is a derived per-account row: running debit and credit sums
// and the balance under the account's normal-balance convention. It is a pure
// projection of the transaction list, recomputed on every report request and
// never persisted.
type AccountBalance struct {
	Category domain.Category
	Account  string
	Debits   decimal.Decimal
	Credits  decimal.Decimal
	Balance  decimal.Decimal
}

// CategoryTotals maps each category to the sum of its account balances.
type CategoryTotals map[domain.Category]decimal.Decimal

// TrialBalance is the full ledger aggregation: one row per (category, account)
// pair seen in the transactions, sorted by fixed category order then account
// name, plus grand debit/credit totals.
type TrialBalance struct {
	Rows         []AccountBalance
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// BalanceSheet restricts the aggregation to Assets, Liabilities and Equity.
// TotalLiabilitiesPlusEquity is reported, not enforced: per-transaction
// balance checks guarantee global debit/credit equality, but a misclassified
// entry can still make assets differ from liabilities plus equity. The report
// surfaces that instead of hiding it.
type BalanceSheet struct {
	Assets                     []AccountBalance
	Liabilities                []AccountBalance
	Equity                     []AccountBalance
	TotalAssets                decimal.Decimal
	TotalLiabilities           decimal.Decimal
	TotalEquity                decimal.Decimal
	TotalLiabilitiesPlusEquity decimal.Decimal
}

// IncomeStatement restricts the aggregation to Revenue and Expenses.
type IncomeStatement struct {
	Revenue       []AccountBalance
	Expenses      []AccountBalance
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// DashboardTotals are the headline figures shown on the dashboard.
type DashboardTotals struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
	Revenue     decimal.Decimal
	Expenses    decimal.Decimal
	NetIncome   decimal.Decimal
}

// AccountBalances folds every entry of every transaction into per-account
// debit/credit sums keyed by (category, account), then derives each balance by
// the normal-balance convention: debits minus credits for debit-normal
// categories, credits minus debits otherwise. Rows come back sorted by fixed
// category order, then account name.
func AccountBalances(transactions []domain.Transaction) []AccountBalance {
	type key struct {
		category domain.Category
		account  string
	}

	acc := make(map[key]*AccountBalance)
	for _, tx := range transactions {
		for _, e := range tx.Entries {
			k := key{e.Category, e.Account}
			row, ok := acc[k]
			if !ok {
				row = &AccountBalance{
					Category: e.Category,
					Account:  e.Account,
					Debits:   decimal.Zero,
					Credits:  decimal.Zero,
				}
				acc[k] = row
			}
			if e.Type == domain.EntryTypeDebit {
				row.Debits = row.Debits.Add(e.Amount)
			} else {
				row.Credits = row.Credits.Add(e.Amount)
			}
		}
	}

	rows := make([]AccountBalance, 0, len(acc))
	for _, row := range acc {
		if row.Category.DebitNormal() {
			row.Balance = row.Debits.Sub(row.Credits)
		} else {
			row.Balance = row.Credits.Sub(row.Debits)
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category.SortOrder() < rows[j].Category.SortOrder()
		}
		return rows[i].Account < rows[j].Account
	})

	return rows
}

// TotalsByCategory rolls account balances up into per-category totals.
// Categories with no activity map to zero.
func TotalsByCategory(rows []AccountBalance) CategoryTotals {
	totals := make(CategoryTotals, len(domain.Categories))
	for _, c := range domain.Categories {
		totals[c] = decimal.Zero
	}
	for _, row := range rows {
		totals[row.Category] = totals[row.Category].Add(row.Balance)
	}
	return totals
}

// ComputeTrialBalance aggregates the transaction list into the trial balance
// view. Pure function: same input, same output, no hidden state.
func ComputeTrialBalance(transactions []domain.Transaction) TrialBalance {
	rows := AccountBalances(transactions)

	tb := TrialBalance{
		Rows:         rows,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, row := range rows {
		tb.TotalDebits = tb.TotalDebits.Add(row.Debits)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credits)
	}
	return tb
}

// ComputeBalanceSheet aggregates the transaction list into the balance sheet
// view.
func ComputeBalanceSheet(transactions []domain.Transaction) BalanceSheet {
	rows := AccountBalances(transactions)
	totals := TotalsByCategory(rows)

	bs := BalanceSheet{
		TotalAssets:      totals[domain.CategoryAssets],
		TotalLiabilities: totals[domain.CategoryLiabilities],
		TotalEquity:      totals[domain.CategoryEquity],
	}
	bs.TotalLiabilitiesPlusEquity = bs.TotalLiabilities.Add(bs.TotalEquity)

	for _, row := range rows {
		switch row.Category {
		case domain.CategoryAssets:
			bs.Assets = append(bs.Assets, row)
		case domain.CategoryLiabilities:
			bs.Liabilities = append(bs.Liabilities, row)
		case domain.CategoryEquity:
			bs.Equity = append(bs.Equity, row)
		}
	}
	return bs
}

// ComputeIncomeStatement aggregates the transaction list into the income
// statement view, with netIncome = revenue - expenses.
func ComputeIncomeStatement(transactions []domain.Transaction) IncomeStatement {
	rows := AccountBalances(transactions)
	totals := TotalsByCategory(rows)

	is := IncomeStatement{
		TotalRevenue:  totals[domain.CategoryRevenue],
		TotalExpenses: totals[domain.CategoryExpenses],
	}
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)

	for _, row := range rows {
		switch row.Category {
		case domain.CategoryRevenue:
			is.Revenue = append(is.Revenue, row)
		case domain.CategoryExpenses:
			is.Expenses = append(is.Expenses, row)
		}
	}
	return is
}

// ComputeDashboard derives the headline category totals and net income.
func ComputeDashboard(transactions []domain.Transaction) DashboardTotals {
	totals := TotalsByCategory(AccountBalances(transactions))
	return DashboardTotals{
		Assets:      totals[domain.CategoryAssets],
		Liabilities: totals[domain.CategoryLiabilities],
		Equity:      totals[domain.CategoryEquity],
		Revenue:     totals[domain.CategoryRevenue],
		Expenses:    totals[domain.CategoryExpenses],
		NetIncome:   totals[domain.CategoryRevenue].Sub(totals[domain.CategoryExpenses]),
	}
}

// FilterByDateRange keeps transactions whose date falls inside [from, to].
// Bounds are ISO dates (YYYY-MM-DD); an empty bound is open. Dates compare at
// day granularity.
func FilterByDateRange(transactions []domain.Transaction, from, to string) []domain.Transaction {
	if from == "" && to == "" {
		return transactions
	}

	var out []domain.Transaction
	for _, tx := range transactions {
		day := tx.Date.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, tx)
	}
	return out
}
