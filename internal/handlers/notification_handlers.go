package handlers

import (
	"net/http"
	"strconv"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// GET /api/v1/notifications?unread=true&limit=20
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	onlyUnread, _ := strconv.ParseBool(r.URL.Query().Get("unread"))

	list, err := h.Service.List(r.Context(), uid, onlyUnread, limit)
	if err != nil {
		log.Logger.Error().Err(err).Msg("notifications list failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// PUT /api/v1/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	notifID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Service.MarkRead(r.Context(), uid, notifID); err != nil {
		log.Logger.Error().Err(err).Msg("mark read failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.Service.MarkAllRead(r.Context(), uid); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
