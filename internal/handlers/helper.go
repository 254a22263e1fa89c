package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/middlewares"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestUser pulls the authenticated user id out of the request context.
// Returns uuid.Nil and writes a 401 when the claims are missing or broken.
func requestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, *auth.UserClaims, bool) {
	claims := middlewares.GetUserClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return uuid.Nil, nil, false
	}
	uid, err := claims.Subject()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid user id")
		return uuid.Nil, nil, false
	}
	return uid, claims, true
}
