package journal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type Handler struct {
	svc *journal.Service
}

func NewHandler(svc *journal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.post)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/void", h.void)
}

type lineRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Debit     string `json:"debit" validate:"omitempty,numeric"`
	Credit    string `json:"credit" validate:"omitempty,numeric"`
	Narration string `json:"narration" validate:"max=500"`
}

type postJournalRequest struct {
	Date      string        `json:"date" validate:"required,datetime=2006-01-02"`
	Narration string        `json:"narration" validate:"max=500"`
	Lines     []lineRequest `json:"lines" validate:"required,dive"`
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	return money.Parse(s)
}

func (req postJournalRequest) params(ownerID uuid.UUID) (journal.PostParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return journal.PostParams{}, err
	}

	params := journal.PostParams{
		OwnerID:   ownerID,
		Date:      date,
		Narration: req.Narration,
		Lines:     make([]journal.LineParams, len(req.Lines)),
	}

	for i, l := range req.Lines {
		accountID, err := uuid.Parse(l.AccountID)
		if err != nil {
			return journal.PostParams{}, err
		}

		debit, err := parseAmount(l.Debit)
		if err != nil {
			return journal.PostParams{}, err
		}

		credit, err := parseAmount(l.Credit)
		if err != nil {
			return journal.PostParams{}, err
		}

		params.Lines[i] = journal.LineParams{
			AccountID: accountID,
			Debit:     debit,
			Credit:    credit,
			Narration: l.Narration,
		}
	}

	return params, nil
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req postJournalRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.params(ownerID)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := h.svc.Post(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(j))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := journal.ListFilter{OwnerID: ownerID}

	var err error

	if filter.From, err = respond.Date(q.Get("from")); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if filter.To, err = respond.Date(q.Get("to")); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if s := q.Get("status"); s != "" {
		filter.Status = new(journal.Status(s))
	}

	journals, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(journals))
}

func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*journal.Journal, bool) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	j, err := h.svc.Get(r.Context(), id)
	if err == nil && j.OwnerID != ownerID {
		err = journal.ErrNotFound
	}

	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return j, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	j, ok := h.owned(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(j))
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	j, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.svc.Void(r.Context(), j.ID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
