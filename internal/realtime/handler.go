package realtime

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/auth"
	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// IdentityResolver turns an incoming upgrade request into an authenticated
// user id.
type IdentityResolver func(r *http.Request) (uuid.UUID, error)

// BearerResolver resolves identity from an Authorization header or, because
// browser websocket clients cannot set headers, from the access_token query
// parameter. The query fallback is wired only into the two hub endpoints;
// generic API routes keep header-only auth so tokens stay out of URL logs.
func BearerResolver(pubKey *rsa.PublicKey) IdentityResolver {
	return func(r *http.Request) (uuid.UUID, error) {
		tokenStr := ""
		if h := r.Header.Get("Authorization"); h != "" {
			parts := strings.Split(h, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("access_token")
		}
		if tokenStr == "" {
			return uuid.Nil, auth.ErrNoToken
		}

		claims, err := auth.ParseUserToken(tokenStr, pubKey)
		if err != nil {
			return uuid.Nil, err
		}
		return claims.Subject()
	}
}

// MarkReadFunc flags one stored notification as read.
type MarkReadFunc func(ctx context.Context, userID, notifID uuid.UUID) error

// SendChatFunc persists and delivers one direct message.
type SendChatFunc func(ctx context.Context, senderID, receiverID uuid.UUID, text string) error

// NotificationHandler upgrades HTTP → WS on the notification endpoint. The
// session joins the all-users group plus one group per community membership;
// inbound "mark_read" frames are acked back on the same connection.
func NotificationHandler(hub *Hub, whoAmI IdentityResolver, markRead MarkReadFunc) http.HandlerFunc {
	inbound := func(ctx context.Context, s *Session, frame InboundFrame) {
		if frame.Type != "mark_read" {
			return
		}
		if err := markRead(ctx, s.UserID(), frame.ID); err != nil {
			log.Logger.Error().Err(err).
				Str("user_id", s.UserID().String()).
				Str("notif_id", frame.ID.String()).
				Msg("mark read failed")
			return
		}
		_ = s.Send(Envelope{Event: EventReadAck, Data: map[string]any{"id": frame.ID}})
	}

	return serveHub(hub, whoAmI, inbound)
}

// ChatHandler upgrades HTTP → WS on the chat endpoint. Inbound "send"
// frames go through sendChat, which persists the message and delivers it to
// the receiver's live connections.
func ChatHandler(hub *Hub, whoAmI IdentityResolver, sendChat SendChatFunc) http.HandlerFunc {
	inbound := func(ctx context.Context, s *Session, frame InboundFrame) {
		if frame.Type != "send" {
			return
		}
		if frame.ReceiverID == uuid.Nil || frame.Text == "" {
			return
		}
		if err := sendChat(ctx, s.UserID(), frame.ReceiverID, frame.Text); err != nil {
			log.Logger.Error().Err(err).
				Str("sender_id", s.UserID().String()).
				Str("receiver_id", frame.ReceiverID.String()).
				Msg("chat send failed")
		}
	}

	return serveHub(hub, whoAmI, inbound)
}

func serveHub(hub *Hub, whoAmI IdentityResolver, inbound InboundHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := whoAmI(r)
		if err != nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Logger.Warn().Err(err).Msg("ws upgrade failed")
			return
		}

		s := newSession(hub, ws, uid, inbound)
		s.join(r.Context())
		go s.run(context.Background())
	}
}
