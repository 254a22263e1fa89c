package handlers

import (
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/config"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler creates a user account.
func RegisterHandler(users *repository.UserRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.Email == "" || req.Password == "" || req.DisplayName == "" {
			writeError(w, http.StatusBadRequest, "email, password and displayName required")
			return
		}

		if _, err := users.GetByEmail(req.Email); err == nil {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		newUser := models.User{
			ID:           uuid.New(),
			Email:        strings.ToLower(req.Email),
			PasswordHash: string(hash),
			DisplayName:  req.DisplayName,
			CreatedAt:    time.Now(),
		}
		if err := users.Create(&newUser); err != nil {
			log.Logger.Error().Err(err).Msg("failed to create user")
			writeError(w, http.StatusInternalServerError, "failed to create user")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "user created successfully",
			"userId":  newUser.ID,
		})
	}
}

// LoginHandler verifies credentials and issues an RS256 access token.
func LoginHandler(users *repository.UserRepo, cfg config.Config, privateKey *rsa.PrivateKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password required")
			return
		}

		user, err := users.GetByEmail(req.Email)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		accessToken, err := auth.GenerateUserToken(*user, privateKey, cfg.UserTokenTTL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		refreshToken, err := auth.GenerateRefreshToken(*user, privateKey, cfg.RefreshTokenTTL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "refresh_token",
			Value:    refreshToken,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
			MaxAge:   int(cfg.RefreshTokenTTL.Seconds()),
		})

		writeJSON(w, http.StatusOK, dto.LoginResponse{
			Token:       accessToken,
			UserID:      user.ID.String(),
			Email:       user.Email,
			DisplayName: user.DisplayName,
			ExpiresIn:   int64(cfg.UserTokenTTL.Seconds()),
		})
	}
}

// MeHandler echoes the authenticated identity.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, claims, ok := requestUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"userId":      uid,
			"email":       claims.Email,
			"displayName": claims.DisplayName,
		})
	}
}
