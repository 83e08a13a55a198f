package handler

import (
	"net/http"

	"github.com/gorillabooks/gorillabooks/internal/domain"
)

// AccountsHandler serves the fixed chart of accounts. The registry is static,
// so there is no service or store behind it.
type AccountsHandler struct{}

func NewAccountsHandler() *AccountsHandler {
	return &AccountsHandler{}
}

type categoryDTO struct {
	Category    string   `json:"category"`
	DebitNormal bool     `json:"debit_normal"`
	Accounts    []string `json:"accounts"`
}

// List returns every category with its accounts, in fixed category order.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	dtos := make([]categoryDTO, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		dtos = append(dtos, categoryDTO{
			Category:    string(c),
			DebitNormal: c.DebitNormal(),
			Accounts:    domain.AccountsFor(c),
		})
	}
	RespondSuccess(w, http.StatusOK, dtos)
}
