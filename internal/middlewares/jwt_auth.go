// middlewares/jwt_auth.go
package middlewares

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	jwtAuth "github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/contextkeys"
)

// RequireUserAuth validates the JWT and injects UserClaims into request.Context.
func RequireUserAuth(pubKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := jwtAuth.ParseUserToken(tokenStr, pubKey)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if claims.TokenType != "access" {
				http.Error(w, "invalid token type", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), contextkeys.UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaims retrieves the UserClaims previously set in context.
func GetUserClaims(ctx context.Context) *jwtAuth.UserClaims {
	if v := ctx.Value(contextkeys.UserClaimsKey); v != nil {
		if uc, ok := v.(*jwtAuth.UserClaims); ok {
			return uc
		}
	}
	return nil
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header required")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}
