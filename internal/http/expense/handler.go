package expense

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/post", h.post)
}

type createExpenseRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	PayeeName    string `json:"payee_name" validate:"max=200"`
	CategoryName string `json:"category_name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=500"`
	GrossAmount  string `json:"gross_amount" validate:"required,numeric"`
	TaxAmount    string `json:"tax_amount" validate:"omitempty,numeric"`
	TDSAmount    string `json:"tds_amount" validate:"omitempty,numeric"`
	TDSRuleID    string `json:"tds_rule_id" validate:"omitempty,uuid"`
	PaymentMode  string `json:"payment_mode" validate:"required,oneof=cash bank debit_card upi cheque credit_card"`
}

func optionalAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	return money.Parse(s)
}

func (req createExpenseRequest) params(ownerID uuid.UUID) (expense.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return expense.CreateParams{}, err
	}

	gross, err := money.Parse(req.GrossAmount)
	if err != nil {
		return expense.CreateParams{}, err
	}

	taxAmount, err := optionalAmount(req.TaxAmount)
	if err != nil {
		return expense.CreateParams{}, err
	}

	tds, err := optionalAmount(req.TDSAmount)
	if err != nil {
		return expense.CreateParams{}, err
	}

	params := expense.CreateParams{
		OwnerID:      ownerID,
		Date:         date,
		PayeeName:    req.PayeeName,
		CategoryName: req.CategoryName,
		Description:  req.Description,
		GrossAmount:  gross,
		TaxAmount:    taxAmount,
		TDSAmount:    tds,
		PaymentMode:  posting.PaymentMode(req.PaymentMode),
	}

	if req.TDSRuleID != "" {
		id, err := uuid.Parse(req.TDSRuleID)
		if err != nil {
			return expense.CreateParams{}, err
		}

		params.TDSRuleID = &id
	}

	return params, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.params(ownerID)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := expense.ListFilter{OwnerID: ownerID}

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
		filter.Status = new(expense.Status(s))
	}

	expenses, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(expenses))
}

func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*expense.Expense, bool) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	e, err := h.svc.Get(r.Context(), id)
	if err == nil && e.OwnerID != ownerID {
		err = expense.ErrNotFound
	}

	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return e, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.owned(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	e, ok := h.owned(w, r)
	if !ok {
		return
	}

	posted, err := h.svc.Post(r.Context(), e.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(posted))
}
