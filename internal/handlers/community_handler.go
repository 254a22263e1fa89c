package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/services"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CommunityHandler struct {
	Service *services.CommunityService
}

func NewCommunityHandler(svc *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{Service: svc}
}

// POST /api/v1/communities
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	community, err := h.Service.CreateCommunity(r.Context(), uid, req.Name, req.Description)
	if err != nil {
		log.Logger.Error().Err(err).Msg("create community failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, community)
}

// POST /api/v1/communities/{id}/join
func (h *CommunityHandler) Join(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}
	communityID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid community id")
		return
	}

	if err := h.Service.Join(r.Context(), uid, communityID); err != nil {
		log.Logger.Error().Err(err).Msg("join community failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/communities/posts
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.CommunityID == uuid.Nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "communityId and content required")
		return
	}

	post, err := h.Service.CreatePost(r.Context(), uid, req.CommunityID, req.Content)
	if err != nil {
		log.Logger.Error().Err(err).Msg("create post failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// POST /api/v1/communities/posts/{id}/like
func (h *CommunityHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, h.Service.LikePost)
}

// DELETE /api/v1/communities/posts/{id}/like
func (h *CommunityHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, h.Service.UnlikePost)
}

// POST /api/v1/communities/posts/{id}/comments
func (h *CommunityHandler) CommentOnPost(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content required")
		return
	}

	comment, err := h.Service.CommentOnPost(r.Context(), uid, postID, req.Content)
	if err != nil {
		log.Logger.Error().Err(err).Msg("comment failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// PUT /api/v1/communities/posts/{id}/approve
func (h *CommunityHandler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	h.moderationAction(w, r, h.Service.ApprovePost)
}

// PUT /api/v1/communities/posts/{id}/reject
func (h *CommunityHandler) RejectPost(w http.ResponseWriter, r *http.Request) {
	h.moderationAction(w, r, h.Service.RejectPost)
}

// POST /api/v1/communities/moderators
func (h *CommunityHandler) AssignModerator(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, h.Service.AssignModerator)
}

// DELETE /api/v1/communities/moderators
func (h *CommunityHandler) RemoveModerator(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, h.Service.RemoveModerator)
}

// POST /api/v1/communities/bans
func (h *CommunityHandler) BanMember(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, h.Service.BanMember)
}

// DELETE /api/v1/communities/bans
func (h *CommunityHandler) UnbanMember(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, h.Service.UnbanMember)
}

func (h *CommunityHandler) postAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actorID, postID uuid.UUID) error) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := action(r.Context(), uid, postID); err != nil {
		log.Logger.Error().Err(err).Msg("post action failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommunityHandler) moderationAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, moderatorID, postID uuid.UUID) error) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := action(r.Context(), uid, postID); err != nil {
		if errors.Is(err, services.ErrNotModerator) {
			writeError(w, http.StatusForbidden, "moderator role required")
			return
		}
		log.Logger.Error().Err(err).Msg("moderation action failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommunityHandler) memberAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actorID, communityID, targetID uuid.UUID) error) {
	uid, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req dto.MemberActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.CommunityID == uuid.Nil || req.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "communityId and userId required")
		return
	}

	if err := action(r.Context(), uid, req.CommunityID, req.UserID); err != nil {
		if errors.Is(err, services.ErrNotModerator) {
			writeError(w, http.StatusForbidden, "moderator role required")
			return
		}
		log.Logger.Error().Err(err).Msg("member action failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
