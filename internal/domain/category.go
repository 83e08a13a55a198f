package domain

// Category is one of the five top-level GAAP account classifications.
type Category string

const (
	CategoryAssets      Category = "Assets"
	CategoryLiabilities Category = "Liabilities"
	CategoryEquity      Category = "Equity"
	CategoryRevenue     Category = "Revenue"
	CategoryExpenses    Category = "Expenses"
)

// Categories lists all categories in report order:
// Assets < Liabilities < Equity < Revenue < Expenses.
var Categories = []Category{
	CategoryAssets,
	CategoryLiabilities,
	CategoryEquity,
	CategoryRevenue,
	CategoryExpenses,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryAssets, CategoryLiabilities, CategoryEquity, CategoryRevenue, CategoryExpenses:
		return true
	}
	return false
}

// SortOrder returns the fixed report position of the category, starting at 1.
// Unknown categories sort last.
func (c Category) SortOrder() int {
	for i, known := range Categories {
		if c == known {
			return i + 1
		}
	}
	return len(Categories) + 1
}

// DebitNormal reports whether the category's accounts increase on the debit
// side. Assets and Expenses are debit-normal; Liabilities, Equity and Revenue
// are credit-normal. The convention is fixed and not configurable per account.
func (c Category) DebitNormal() bool {
	return c == CategoryAssets || c == CategoryExpenses
}

// gaapAccounts is the chart of accounts: each category maps to its permitted
// sub-accounts, in presentation order. Changing it is a code change, not a
// runtime operation.
var gaapAccounts = map[Category][]string{
	CategoryAssets: {
		"Cash",
		"Accounts Receivable",
		"Inventory",
		"Prepaid Expenses",
		"Property, Plant & Equipment",
		"Intangible Assets",
		"Other Assets",
	},
	CategoryLiabilities: {
		"Accounts Payable",
		"Accrued Expenses",
		"Short-term Debt",
		"Long-term Debt",
		"Deferred Revenue",
		"Other Liabilities",
	},
	CategoryEquity: {
		"Common Stock",
		"Retained Earnings",
		"Additional Paid-in Capital",
		"Treasury Stock",
		"Other Equity",
	},
	CategoryRevenue: {
		"Product Revenue",
		"Service Revenue",
		"Interest Income",
		"Other Income",
	},
	CategoryExpenses: {
		"Cost of Goods Sold",
		"Salaries & Wages",
		"Rent",
		"Utilities",
		"Marketing & Advertising",
		"Professional Services",
		"Technology & Software",
		"Depreciation",
		"Interest Expense",
		"Other Expenses",
	},
}

// AccountsFor returns the permitted sub-accounts for a category in their fixed
// order. The returned slice is a copy; callers may not mutate the chart.
// Unknown categories yield nil.
func AccountsFor(c Category) []string {
	accounts, ok := gaapAccounts[c]
	if !ok {
		return nil
	}
	out := make([]string, len(accounts))
	copy(out, accounts)
	return out
}

// IsValidAccount reports whether account appears in the fixed list for the
// given category.
func IsValidAccount(c Category, account string) bool {
	for _, a := range gaapAccounts[c] {
		if a == account {
			return true
		}
	}
	return false
}
