package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"
)

// SessionState is the connection lifecycle. Closed is terminal.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateAuthenticated
	StateJoined
	StateActive
	StateDisconnecting
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateJoined:
		return "joined"
	case StateActive:
		return "active"
	case StateDisconnecting:
		return "disconnecting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var (
	ErrSessionClosed = errors.New("session closed")
	ErrQueueFull     = errors.New("send queue full")
)

// transport is the subset of *websocket.Conn a session drives. Tests plug
// in fakes.
type transport interface {
	ReadJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// InboundFrame is a client→server message on either endpoint.
type InboundFrame struct {
	Type       string    `json:"type"`
	ReceiverID uuid.UUID `json:"receiverId,omitempty"`
	Text       string    `json:"text,omitempty"`
	ID         uuid.UUID `json:"id,omitempty"`
}

// InboundHandler consumes frames read off an active session.
type InboundHandler func(ctx context.Context, s *Session, frame InboundFrame)

// Session is one live connection: the per-connection state machine plus the
// send/receive pumps. Identity is resolved before the session is created,
// so a new session starts Authenticated.
type Session struct {
	id        string
	userID    uuid.UUID
	ws        transport
	hub       *Hub
	inbound   InboundHandler
	out       chan []byte
	done      chan struct{}
	state     atomic.Int32
	closeOnce sync.Once
	connected time.Time
}

func newSession(hub *Hub, ws transport, userID uuid.UUID, inbound InboundHandler) *Session {
	s := &Session{
		id:        uuid.NewString(),
		userID:    userID,
		ws:        ws,
		hub:       hub,
		inbound:   inbound,
		out:       make(chan []byte, hub.sendBuffer),
		done:      make(chan struct{}),
		connected: time.Now(),
	}
	s.state.Store(int32(StateAuthenticated))
	return s
}

func (s *Session) ConnectionID() string { return s.id }
func (s *Session) UserID() uuid.UUID    { return s.userID }

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// join registers the session and computes its group memberships. A failed
// membership lookup degrades the session to the all-users group only; the
// connection still completes.
func (s *Session) join(ctx context.Context) {
	s.hub.registry.Register(s)
	s.hub.groups.Join(GroupAllUsers, s)

	communityIDs, err := s.hub.members.CommunityIDsForUser(ctx, s.userID)
	if err != nil {
		log.Logger.Warn().
			Err(err).
			Str("user_id", s.userID.String()).
			Msg("membership lookup failed, session degraded to all-users")
	} else {
		for _, id := range communityIDs {
			s.hub.groups.Join(CommunityGroup(id), s)
		}
	}

	s.state.Store(int32(StateJoined))
	liveConnections.Inc()
	s.state.Store(int32(StateActive))
}

// run drives the read and write pumps; it returns when the connection dies.
func (s *Session) run(ctx context.Context) {
	go s.writeLoop()
	s.readLoop(ctx)
}

// Send queues env for delivery. Non-blocking: a full queue or a closed
// session returns an error for the caller to absorb, it never stalls the
// publisher on a slow tab.
func (s *Session) Send(env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.out <- b:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrQueueFull
	}
}

func (s *Session) readLoop(ctx context.Context) {
	defer s.Close()

	for {
		var frame InboundFrame
		if err := s.ws.ReadJSON(&frame); err != nil {
			return // closed
		}
		if s.inbound != nil {
			s.inbound(ctx, s, frame)
		}
	}
}

func (s *Session) writeLoop() {
	tick := time.NewTicker(s.hub.pingInterval)
	defer tick.Stop()

	for {
		select {
		case msg := <-s.out:
			if err := s.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.Close()
				return
			}

		case <-tick.C:
			if err := s.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			_ = s.ws.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}

// Close tears the session down: unregister, leave every joined group, close
// the transport. Runs exactly once no matter how many paths race into it;
// duplicate disconnects are no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateDisconnecting))

		s.hub.registry.Unregister(s.id)
		s.hub.groups.LeaveAll(s.id)
		close(s.done)
		_ = s.ws.Close()

		liveConnections.Dec()
		s.state.Store(int32(StateClosed))

		log.Logger.Debug().
			Str("conn_id", s.id).
			Str("user_id", s.userID.String()).
			Dur("lifetime", time.Since(s.connected)).
			Msg("session closed")
	})
}
