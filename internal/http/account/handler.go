package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/resolve", h.resolve)
	r.Post("/codes", h.generateCode)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/deactivate", h.deactivate)
}

type createAccountRequest struct {
	Code           string `json:"code" validate:"required,max=32"`
	Name           string `json:"name" validate:"required,max=200"`
	Type           string `json:"type" validate:"required,oneof=asset liability equity income expense"`
	OpeningBalance string `json:"opening_balance" validate:"omitempty,numeric"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req createAccountRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	opening := decimal.Zero

	if req.OpeningBalance != "" {
		var err error
		if opening, err = money.Parse(req.OpeningBalance); err != nil {
			respond.Message(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		OwnerID:        ownerID,
		Code:           req.Code,
		Name:           req.Name,
		Type:           account.Type(req.Type),
		OpeningBalance: opening,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(acc))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	filter := account.ListFilter{OwnerID: ownerID}

	if s := r.URL.Query().Get("type"); s != "" {
		typ, err := account.ParseType(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.Type = &typ
	}

	if r.URL.Query().Get("active") == "true" {
		filter.ActiveOnly = true
	}

	accounts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(accounts))
}

// owned loads the account in the path, answering 404 for other owners'.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*account.Account, bool) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return nil, false
	}

	acc, err := h.svc.Get(r.Context(), id)
	if err == nil && acc.OwnerID != ownerID {
		err = account.ErrNotFound
	}

	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return acc, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.owned(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(acc))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(r.Context(), acc.ID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type resolveRequest struct {
	Type string `json:"type" validate:"required,oneof=asset liability equity income expense"`
	Hint string `json:"hint" validate:"required,max=200"`
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.svc.FindOrCreate(r.Context(), ownerID, account.Type(req.Type), req.Hint)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(acc))
}

type generateCodeRequest struct {
	Type string `json:"type" validate:"required,oneof=asset liability equity income expense"`
}

func (h *Handler) generateCode(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.MustOwner(w, r)
	if !ok {
		return
	}

	var req generateCodeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := h.svc.GenerateCode(r.Context(), ownerID, account.Type(req.Type))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, codeResponse{Code: code})
}
