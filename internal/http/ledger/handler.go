package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	ledger   *ledger.Service
	accounts *account.Service
}

func NewHandler(ledgerSvc *ledger.Service, accountSvc *account.Service) *Handler {
	return &Handler{ledger: ledgerSvc, accounts: accountSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/accounts/{id}", h.accountLedger)
	r.Get("/trial-balance", h.trialBalance)
}

func (h *Handler) accountLedger(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	asOf, err := respond.Date(r.URL.Query().Get("as_of"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.accounts.Get(r.Context(), id)
	if err == nil && acc.OwnerID != ownerID {
		err = account.ErrNotFound
	}

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rows, err := h.ledger.RunningBalance(r.Context(), id, asOf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLedgerResponse(acc, rows))
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	asOf, err := respond.Date(r.URL.Query().Get("as_of"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	tb, err := h.ledger.TrialBalance(r.Context(), ownerID, asOf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTrialBalanceResponse(tb))
}
