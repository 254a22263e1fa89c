package handlers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MAHMOUDBADAWY74/Graduation-project/config"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/dto"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"
)

func setupUsers(t *testing.T) *repository.UserRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return repository.NewUserRepo(db)
}

func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	users := setupUsers(t)
	key := testSigningKey(t)
	cfg := config.Config{UserTokenTTL: time.Hour, RefreshTokenTTL: 24 * time.Hour}

	register := RegisterHandler(users)
	login := LoginHandler(users, cfg, key)

	rec := postJSON(t, register, "/api/v1/auth/register", dto.RegisterRequest{
		Email:       "Reader@Example.com",
		Password:    "s3cret-pass",
		DisplayName: "reader",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, login, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "reader", resp.DisplayName)

	// The issued token verifies against the matching public key.
	claims, err := auth.ParseUserToken(resp.Token, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", claims.Email)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refresh_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := setupUsers(t)
	register := RegisterHandler(users)

	body := dto.RegisterRequest{Email: "dup@example.com", Password: "pw123456", DisplayName: "dup"}
	rec := postJSON(t, register, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, register, "/api/v1/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	users := setupUsers(t)
	key := testSigningKey(t)
	cfg := config.Config{UserTokenTTL: time.Hour, RefreshTokenTTL: 24 * time.Hour}

	rec := postJSON(t, RegisterHandler(users), "/api/v1/auth/register", dto.RegisterRequest{
		Email: "reader@example.com", Password: "right-pass", DisplayName: "reader",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, LoginHandler(users, cfg, key), "/api/v1/auth/login", dto.LoginRequest{
		Email: "reader@example.com", Password: "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	users := setupUsers(t)
	key := testSigningKey(t)
	cfg := config.Config{UserTokenTTL: time.Hour}

	rec := postJSON(t, LoginHandler(users, cfg, key), "/api/v1/auth/login", dto.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
