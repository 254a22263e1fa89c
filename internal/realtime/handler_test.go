package realtime

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
)

func testKeyAndToken(t *testing.T) (*rsa.PublicKey, string, uuid.UUID) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	user := models.User{ID: uuid.New(), Email: "reader@example.com", DisplayName: "Reader"}
	token, err := auth.GenerateUserToken(user, privateKey, time.Minute)
	require.NoError(t, err)
	return &privateKey.PublicKey, token, user.ID
}

func TestBearerResolverHeader(t *testing.T) {
	pub, token, userID := testKeyAndToken(t)
	resolve := BearerResolver(pub)

	r := httptest.NewRequest(http.MethodGet, "/hubs/notifications", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	uid, err := resolve(r)
	require.NoError(t, err)
	assert.Equal(t, userID, uid)
}

func TestBearerResolverQueryParam(t *testing.T) {
	pub, token, userID := testKeyAndToken(t)
	resolve := BearerResolver(pub)

	// Streaming clients cannot set headers; the hub endpoints accept the
	// token as a query parameter instead.
	r := httptest.NewRequest(http.MethodGet, "/hubs/chat?access_token="+token, nil)

	uid, err := resolve(r)
	require.NoError(t, err)
	assert.Equal(t, userID, uid)
}

func TestBearerResolverNoToken(t *testing.T) {
	pub, _, _ := testKeyAndToken(t)
	resolve := BearerResolver(pub)

	r := httptest.NewRequest(http.MethodGet, "/hubs/notifications", nil)
	_, err := resolve(r)
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestBearerResolverBadToken(t *testing.T) {
	pub, _, _ := testKeyAndToken(t)
	resolve := BearerResolver(pub)

	r := httptest.NewRequest(http.MethodGet, "/hubs/notifications?access_token=garbage", nil)
	_, err := resolve(r)
	assert.Error(t, err)
}

func TestNotificationHandlerRejectsUnauthenticated(t *testing.T) {
	hub := NewHub(&fakeMembers{})
	markRead := func(context.Context, uuid.UUID, uuid.UUID) error { return nil }
	pub, _, _ := testKeyAndToken(t)

	h := NotificationHandler(hub, BearerResolver(pub), markRead)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/hubs/notifications", nil))

	// Refused before upgrade: the session never registers or joins.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, hub.Registry().Count())
}

func TestChatHandlerRejectsUnauthenticated(t *testing.T) {
	hub := NewHub(&fakeMembers{})
	send := func(context.Context, uuid.UUID, uuid.UUID, string) error { return nil }
	pub, _, _ := testKeyAndToken(t)

	h := ChatHandler(hub, BearerResolver(pub), send)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/hubs/chat", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, hub.Registry().Count())
}
