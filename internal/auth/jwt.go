package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoToken = errors.New("no bearer token")

type UserClaims struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	TokenType   string `json:"typ"`
	jwt.RegisteredClaims
}

// Load private key from PEM
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(b)
}

// Load public key from PEM
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(b)
}

// ========== Token Generators ==========

func GenerateUserToken(user models.User, privateKey *rsa.PrivateKey, ttl time.Duration) (string, error) {
	claims := &UserClaims{
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TokenType:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(privateKey)
}

func GenerateRefreshToken(user models.User, privateKey *rsa.PrivateKey, ttl time.Duration) (string, error) {
	claims := &UserClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(privateKey)
}

// ========== Token Parsing ==========

// ParseUserToken validates an access token and returns its claims.
func ParseUserToken(tokenStr string, pubKey *rsa.PublicKey) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return pubKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("missing essential claims")
	}
	return claims, nil
}

// Subject returns the claims' user id as a uuid.
func (c *UserClaims) Subject() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}
