package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ExchangeHandler struct {
	Service *services.ExchangeService
}

func NewExchangeHandler(svc *services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{Service: svc}
}

// POST /api/v1/exchanges
func (h *ExchangeHandler) Send(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req dto.ExchangeRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "bookId required")
		return
	}

	created, err := h.Service.Send(r.Context(), uid, req.BookID)
	if err != nil {
		if errors.Is(err, services.ErrOwnBook) {
			writeError(w, http.StatusBadRequest, "cannot request your own book")
			return
		}
		log.Logger.Error().Err(err).Msg("exchange send failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PUT /api/v1/exchanges/{id}/accept
func (h *ExchangeHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Accept)
}

// PUT /api/v1/exchanges/{id}/reject
func (h *ExchangeHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

// GET /api/v1/exchanges?limit=20
func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reqs, err := h.Service.ListForUser(r.Context(), uid, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *ExchangeHandler) decide(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, ownerID, requestID uuid.UUID) error) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := action(r.Context(), uid, requestID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotReceiver):
			writeError(w, http.StatusForbidden, "not your request to decide")
		case errors.Is(err, services.ErrAlreadyDecided):
			writeError(w, http.StatusConflict, "request already decided")
		default:
			log.Logger.Error().Err(err).Msg("exchange decision failed")
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
