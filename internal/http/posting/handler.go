package posting

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type Handler struct {
	engine *posting.Engine
}

func NewHandler(engine *posting.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/remittances", h.remit)
}

type remittanceRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Amount      string `json:"amount" validate:"required,numeric"`
	PaymentMode string `json:"payment_mode" validate:"required,oneof=cash bank debit_card upi cheque credit_card"`
	Reference   string `json:"reference" validate:"max=100"`
}

type journalRefResponse struct {
	JournalID uuid.UUID `json:"journal_id"`
	Number    string    `json:"number"`
}

func (h *Handler) remit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req remittanceRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := h.engine.PostTDSRemittance(r.Context(), ownerID, posting.TDSRemittance{
		Date:        date,
		Amount:      amount,
		PaymentMode: posting.PaymentMode(req.PaymentMode),
		Reference:   req.Reference,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, journalRefResponse{JournalID: j.ID, Number: j.Number})
}
