package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	accountHandler "github.com/MrJamesThe3rd/tally/internal/http/account"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	journalHandler "github.com/MrJamesThe3rd/tally/internal/http/journal"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	postingHandler "github.com/MrJamesThe3rd/tally/internal/http/posting"
	taxHandler "github.com/MrJamesThe3rd/tally/internal/http/tax"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/lock"
	"github.com/MrJamesThe3rd/tally/internal/posting"
	"github.com/MrJamesThe3rd/tally/internal/store/memory"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

var secret = []byte("router-test")

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newClient(t *testing.T, server *httptest.Server, owner uuid.UUID) *client {
	t.Helper()

	token, err := auth.Issue(secret, owner, time.Hour)
	require.NoError(t, err)

	return &client{t: t, server: server, token: token}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func newServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()

	st := memory.New()

	var (
		accountService = account.NewService(st)
		journalService = journal.NewService(st)
		ledgerService  = ledger.NewService(st)
		taxService     = tax.NewService(st)
		engine         = posting.NewEngine(accountService, journalService)
		expenseService = expense.NewService(st, engine, journalService, lock.NewLocal(time.Second), nil)
	)

	router := tallyHttp.New(
		tallyHttp.Options{JWTSecret: secret, AllowedOrigins: []string{"*"}},
		accountHandler.NewHandler(accountService),
		journalHandler.NewHandler(journalService),
		ledgerHandler.NewHandler(ledgerService, accountService),
		taxHandler.NewHandler(taxService),
		expenseHandler.NewHandler(expenseService),
		postingHandler.NewHandler(engine),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, st
}

type accountBody struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

func TestRouter_JournalFlow(t *testing.T) {
	server, _ := newServer(t)
	owner := uuid.New()
	c := newClient(t, server, owner)

	var cash, sales accountBody

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "1001", "name": "Cash", "type": "asset", "opening_balance": "1000",
	}, &cash))
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "4001", "name": "Sales", "type": "income",
	}, &sales))

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "1001", "name": "Dup", "type": "asset",
	}, nil))

	var code struct {
		Code string `json:"code"`
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/accounts/codes", map[string]string{"type": "asset"}, &code))
	assert.Equal(t, "1002", code.Code)

	unbalanced := map[string]any{
		"date": "2024-03-01",
		"lines": []map[string]string{
			{"account_id": cash.ID.String(), "debit": "500.00"},
			{"account_id": sales.ID.String(), "credit": "499.99"},
		},
	}
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/journals", unbalanced, nil))

	var posted struct {
		ID     uuid.UUID `json:"id"`
		Number string    `json:"number"`
	}

	balanced := map[string]any{
		"date":      "2024-03-01",
		"narration": "cash sale",
		"lines": []map[string]string{
			{"account_id": cash.ID.String(), "debit": "200"},
			{"account_id": sales.ID.String(), "credit": "200"},
		},
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/journals", balanced, &posted))
	assert.Equal(t, "JV/2024/0001", posted.Number)

	var led struct {
		Rows []struct {
			Opening bool   `json:"opening"`
			Balance string `json:"balance"`
		} `json:"rows"`
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/ledger/accounts/"+cash.ID.String(), nil, &led))
	require.Len(t, led.Rows, 2)
	assert.True(t, led.Rows[0].Opening)
	assert.Equal(t, "1000.00", led.Rows[0].Balance)
	assert.Equal(t, "1200.00", led.Rows[1].Balance)

	var tb struct {
		Balanced bool `json:"balanced"`
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/ledger/trial-balance", nil, &tb))
	assert.True(t, tb.Balanced)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/api/v1/journals/"+posted.ID.String()+"/void", nil, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPost, "/api/v1/journals/"+posted.ID.String()+"/void", nil, nil))

	stranger := newClient(t, server, uuid.New())
	assert.Equal(t, http.StatusNotFound, stranger.do(http.MethodGet, "/api/v1/accounts/"+cash.ID.String(), nil, nil))
	assert.Equal(t, http.StatusNotFound, stranger.do(http.MethodGet, "/api/v1/journals/"+posted.ID.String(), nil, nil))

	anonymous := &client{t: t, server: server}
	assert.Equal(t, http.StatusUnauthorized, anonymous.do(http.MethodGet, "/api/v1/accounts", nil, nil))
}

func TestRouter_ExpenseAndTax(t *testing.T) {
	server, st := newServer(t)
	owner := uuid.New()
	c := newClient(t, server, owner)

	rule := &expense.Rule{OwnerID: owner, Section: "194C", Category: "Contractor", RatePercent: decimalFrom(t, "2")}
	st.AddRule(rule)

	var created struct {
		ID        uuid.UUID `json:"id"`
		TDSAmount string    `json:"tds_amount"`
		Status    string    `json:"status"`
	}

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/expenses", map[string]string{
		"date":          "2024-05-10",
		"payee_name":    "BuildCo",
		"category_name": "Repairs",
		"gross_amount":  "50000",
		"tax_amount":    "9000",
		"tds_rule_id":   rule.ID.String(),
		"payment_mode":  "cheque",
	}, &created))
	assert.Equal(t, "1000.00", created.TDSAmount)
	assert.Equal(t, "draft", created.Status)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/expenses", map[string]string{
		"date": "2024-05-10", "category_name": "Repairs", "gross_amount": "1", "payment_mode": "barter",
	}, nil))

	var posted struct {
		Status    string     `json:"status"`
		JournalID *uuid.UUID `json:"journal_id"`
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/expenses/"+created.ID.String()+"/post", nil, &posted))
	assert.Equal(t, "posted", posted.Status)
	require.NotNil(t, posted.JournalID)

	var summary struct {
		TDS struct {
			TDSAmount string `json:"tds_amount"`
			Count     int    `json:"count"`
		} `json:"tds"`
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/tax/summary?kind=tds&from=2024-05-01&to=2024-05-31", nil, &summary))
	assert.Equal(t, "1000.00", summary.TDS.TDSAmount)
	assert.Equal(t, 1, summary.TDS.Count)

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodGet, "/api/v1/tax/summary?kind=vat&from=2024-05-01&to=2024-05-31", nil, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodGet, "/api/v1/tax/summary?kind=tds&from=2024-06-01&to=2024-05-31", nil, nil))

	var remitted struct {
		Number string `json:"number"`
	}

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/tds/remittances", map[string]string{
		"date": "2024-06-07", "amount": "1000", "payment_mode": "bank",
	}, &remitted))
	assert.Equal(t, "JV/2024/0002", remitted.Number)
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}
