package tax

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

type Handler struct {
	svc *tax.Service
}

func NewHandler(svc *tax.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	kind, err := tax.ParseKind(q.Get("kind"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	from, err := respond.Date(q.Get("from"))
	if err != nil || from == nil {
		respond.Message(w, http.StatusBadRequest, "from must be a YYYY-MM-DD date")
		return
	}

	to, err := respond.Date(q.Get("to"))
	if err != nil || to == nil {
		respond.Message(w, http.StatusBadRequest, "to must be a YYYY-MM-DD date")
		return
	}

	summary, err := h.svc.Summarize(r.Context(), ownerID, tax.Range{From: *from, To: *to}, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(summary))
}
