package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type balanceRowResponse struct {
	Opening       bool   `json:"opening,omitempty"`
	Date          string `json:"date,omitempty"`
	JournalNumber string `json:"journal_number,omitempty"`
	Narration     string `json:"narration"`
	Debit         string `json:"debit"`
	Credit        string `json:"credit"`
	Balance       string `json:"balance"`
}

type accountLedgerResponse struct {
	AccountID uuid.UUID            `json:"account_id"`
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Rows      []balanceRowResponse `json:"rows"`
}

func toLedgerResponse(acc *account.Account, rows []ledger.BalanceRow) accountLedgerResponse {
	resp := accountLedgerResponse{
		AccountID: acc.ID,
		Code:      acc.Code,
		Name:      acc.Name,
		Rows:      make([]balanceRowResponse, len(rows)),
	}

	for i, row := range rows {
		r := balanceRowResponse{
			Opening:       row.Opening,
			JournalNumber: row.JournalNumber,
			Narration:     row.Narration,
			Debit:         money.Format(row.Debit),
			Credit:        money.Format(row.Credit),
			Balance:       money.Format(row.Balance),
		}

		if !row.Date.IsZero() {
			r.Date = row.Date.Format(time.DateOnly)
		}

		resp.Rows[i] = r
	}

	return resp
}

type trialRowResponse struct {
	AccountID uuid.UUID    `json:"account_id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Type      account.Type `json:"type"`
	Opening   string       `json:"opening"`
	Debit     string       `json:"debit"`
	Credit    string       `json:"credit"`
	Closing   string       `json:"closing"`
}

type trialGroupResponse struct {
	Prefix   string             `json:"prefix"`
	Accounts []trialRowResponse `json:"accounts"`
	Opening  string             `json:"opening"`
	Debit    string             `json:"debit"`
	Credit   string             `json:"credit"`
	Closing  string             `json:"closing"`
}

type trialBalanceResponse struct {
	AsOf     *string              `json:"as_of,omitempty"`
	Groups   []trialGroupResponse `json:"groups"`
	Opening  string               `json:"opening"`
	Debit    string               `json:"debit"`
	Credit   string               `json:"credit"`
	Closing  string               `json:"closing"`
	Balanced bool                 `json:"balanced"`
}

func toTrialBalanceResponse(tb *ledger.TrialBalance) trialBalanceResponse {
	resp := trialBalanceResponse{
		Groups:   make([]trialGroupResponse, len(tb.Groups)),
		Opening:  money.Format(tb.Opening),
		Debit:    money.Format(tb.Debit),
		Credit:   money.Format(tb.Credit),
		Closing:  money.Format(tb.Closing),
		Balanced: tb.Balanced(),
	}

	if tb.AsOf != nil {
		resp.AsOf = new(tb.AsOf.Format(time.DateOnly))
	}

	for i, g := range tb.Groups {
		grp := trialGroupResponse{
			Prefix:   g.Prefix,
			Accounts: make([]trialRowResponse, len(g.Accounts)),
			Opening:  money.Format(g.Opening),
			Debit:    money.Format(g.Debit),
			Credit:   money.Format(g.Credit),
			Closing:  money.Format(g.Closing),
		}

		for j, a := range g.Accounts {
			grp.Accounts[j] = trialRowResponse{
				AccountID: a.AccountID,
				Code:      a.Code,
				Name:      a.Name,
				Type:      a.Type,
				Opening:   money.Format(a.Opening),
				Debit:     money.Format(a.Debit),
				Credit:    money.Format(a.Credit),
				Closing:   money.Format(a.Closing),
			}
		}

		resp.Groups[i] = grp
	}

	return resp
}
