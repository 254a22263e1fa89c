package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ChatHandler struct {
	Service *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// POST /api/v1/chat/messages
// REST fallback for clients without a live chat connection; the same path
// the hub's inbound "send" frames go through.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.ReceiverID == uuid.Nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "receiverId and message required")
		return
	}

	if err := h.Service.Send(r.Context(), uid, req.ReceiverID, req.Message); err != nil {
		log.Logger.Error().Err(err).Msg("chat send failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GET /api/v1/chat/conversations/{peerId}?limit=50
func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	peerID, err := uuid.Parse(mux.Vars(r)["peerId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer id")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	msgs, err := h.Service.Conversation(r.Context(), uid, peerID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// PUT /api/v1/chat/conversations/{peerId}/read
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	peerID, err := uuid.Parse(mux.Vars(r)["peerId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid peer id")
		return
	}

	if err := h.Service.MarkRead(r.Context(), uid, peerID); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
