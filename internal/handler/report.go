package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gorillabooks/gorillabooks/internal/auth"
	"github.com/gorillabooks/gorillabooks/internal/ledger"
	"github.com/gorillabooks/gorillabooks/internal/logging"
)

type reportService interface {
	Dashboard(ctx context.Context, userID uuid.UUID, from, to string) (ledger.DashboardTotals, error)
	TrialBalance(ctx context.Context, userID uuid.UUID, from, to string) (ledger.TrialBalance, error)
	BalanceSheet(ctx context.Context, userID uuid.UUID, from, to string) (ledger.BalanceSheet, error)
	IncomeStatement(ctx context.Context, userID uuid.UUID, from, to string) (ledger.IncomeStatement, error)
}

// ReportHandler serves the read-side projections. Every report is recomputed
// from the user's transactions on each request.
type ReportHandler struct {
	reports reportService
}

func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type accountBalanceDTO struct {
	Category string `json:"category"`
	Account  string `json:"account"`
	Debits   string `json:"debits"`
	Credits  string `json:"credits"`
	Balance  string `json:"balance"`
}

func toAccountBalanceDTOs(rows []ledger.AccountBalance) []accountBalanceDTO {
	dtos := make([]accountBalanceDTO, len(rows))
	for i, row := range rows {
		dtos[i] = accountBalanceDTO{
			Category: string(row.Category),
			Account:  row.Account,
			Debits:   row.Debits.StringFixed(2),
			Credits:  row.Credits.StringFixed(2),
			Balance:  row.Balance.StringFixed(2),
		}
	}
	return dtos
}

type dashboardDTO struct {
	Assets      string `json:"assets"`
	Liabilities string `json:"liabilities"`
	Equity      string `json:"equity"`
	Revenue     string `json:"revenue"`
	Expenses    string `json:"expenses"`
	NetIncome   string `json:"net_income"`
}

type trialBalanceDTO struct {
	Rows         []accountBalanceDTO `json:"rows"`
	TotalDebits  string              `json:"total_debits"`
	TotalCredits string              `json:"total_credits"`
	Balanced     bool                `json:"balanced"`
}

type balanceSheetDTO struct {
	Assets                     []accountBalanceDTO `json:"assets"`
	Liabilities                []accountBalanceDTO `json:"liabilities"`
	Equity                     []accountBalanceDTO `json:"equity"`
	TotalAssets                string              `json:"total_assets"`
	TotalLiabilities           string              `json:"total_liabilities"`
	TotalEquity                string              `json:"total_equity"`
	TotalLiabilitiesPlusEquity string              `json:"total_liabilities_plus_equity"`
}

type incomeStatementDTO struct {
	Revenue       []accountBalanceDTO `json:"revenue"`
	Expenses      []accountBalanceDTO `json:"expenses"`
	TotalRevenue  string              `json:"total_revenue"`
	TotalExpenses string              `json:"total_expenses"`
	NetIncome     string              `json:"net_income"`
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := reportParams(w, r)
	if !ok {
		return
	}

	totals, err := h.reports.Dashboard(r.Context(), userID, from, to)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute dashboard", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, dashboardDTO{
		Assets:      totals.Assets.StringFixed(2),
		Liabilities: totals.Liabilities.StringFixed(2),
		Equity:      totals.Equity.StringFixed(2),
		Revenue:     totals.Revenue.StringFixed(2),
		Expenses:    totals.Expenses.StringFixed(2),
		NetIncome:   totals.NetIncome.StringFixed(2),
	})
}

func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := reportParams(w, r)
	if !ok {
		return
	}

	tb, err := h.reports.TrialBalance(r.Context(), userID, from, to)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute trial balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, trialBalanceDTO{
		Rows:         toAccountBalanceDTOs(tb.Rows),
		TotalDebits:  tb.TotalDebits.StringFixed(2),
		TotalCredits: tb.TotalCredits.StringFixed(2),
		Balanced:     tb.TotalDebits.Equal(tb.TotalCredits),
	})
}

func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := reportParams(w, r)
	if !ok {
		return
	}

	bs, err := h.reports.BalanceSheet(r.Context(), userID, from, to)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute balance sheet", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceSheetDTO{
		Assets:                     toAccountBalanceDTOs(bs.Assets),
		Liabilities:                toAccountBalanceDTOs(bs.Liabilities),
		Equity:                     toAccountBalanceDTOs(bs.Equity),
		TotalAssets:                bs.TotalAssets.StringFixed(2),
		TotalLiabilities:           bs.TotalLiabilities.StringFixed(2),
		TotalEquity:                bs.TotalEquity.StringFixed(2),
		TotalLiabilitiesPlusEquity: bs.TotalLiabilitiesPlusEquity.StringFixed(2),
	})
}

func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	userID, from, to, ok := reportParams(w, r)
	if !ok {
		return
	}

	is, err := h.reports.IncomeStatement(r.Context(), userID, from, to)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to compute income statement", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, incomeStatementDTO{
		Revenue:       toAccountBalanceDTOs(is.Revenue),
		Expenses:      toAccountBalanceDTOs(is.Expenses),
		TotalRevenue:  is.TotalRevenue.StringFixed(2),
		TotalExpenses: is.TotalExpenses.StringFixed(2),
		NetIncome:     is.NetIncome.StringFixed(2),
	})
}

// reportParams pulls the authenticated user and the optional date window out
// of the request, writing the error response itself when either is bad.
func reportParams(w http.ResponseWriter, r *http.Request) (userID uuid.UUID, from, to string, ok bool) {
	userID, ok = auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return uuid.Nil, "", "", false
	}

	from, to, appErr := dateWindowFromQuery(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return uuid.Nil, "", "", false
	}
	return userID, from, to, true
}
