package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsList(t *testing.T) {
	h := NewAccountsHandler()

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	categories, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, categories, 5)

	first := categories[0].(map[string]any)
	assert.Equal(t, "Assets", first["category"])
	assert.Equal(t, true, first["debit_normal"])
	accounts := first["accounts"].([]any)
	assert.Equal(t, "Cash", accounts[0])

	last := categories[4].(map[string]any)
	assert.Equal(t, "Expenses", last["category"])
	assert.Equal(t, true, last["debit_normal"])

	revenue := categories[3].(map[string]any)
	assert.Equal(t, "Revenue", revenue["category"])
	assert.Equal(t, false, revenue["debit_normal"])
}
