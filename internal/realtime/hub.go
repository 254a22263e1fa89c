package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MembershipLookup resolves the communities a user belongs to. Queried once
// per connection, at join time; the result is cached for the connection's
// lifetime.
type MembershipLookup interface {
	CommunityIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Hub owns the shared connection state behind both realtime endpoints.
// Sessions register themselves on connect and fully reverse that on
// disconnect; the Broadcaster reads the same indices to fan events out.
type Hub struct {
	registry *ConnectionRegistry
	groups   *GroupIndex
	members  MembershipLookup

	sendBuffer   int
	pingInterval time.Duration
}

type HubOption func(*Hub)

// WithSendBuffer sets the per-connection outbound queue size.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithPingInterval sets the websocket keepalive period.
func WithPingInterval(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

func NewHub(members MembershipLookup, opts ...HubOption) *Hub {
	h := &Hub{
		registry:     NewConnectionRegistry(),
		groups:       NewGroupIndex(),
		members:      members,
		sendBuffer:   16,
		pingInterval: 25 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Broadcaster returns the fan-out facade over this hub's indices.
func (h *Hub) Broadcaster() *Broadcaster {
	return NewBroadcaster(h.registry, h.groups)
}

// Registry exposes the connection index (read paths and tests).
func (h *Hub) Registry() *ConnectionRegistry { return h.registry }

// Groups exposes the group index (read paths and tests).
func (h *Hub) Groups() *GroupIndex { return h.groups }
