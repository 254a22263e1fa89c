package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Sender is the write side of one live connection. Sessions implement it;
// tests substitute fakes.
type Sender interface {
	ConnectionID() string
	UserID() uuid.UUID
	Send(env Envelope) error
}

// ConnectionRegistry maps a user to every live connection they hold
// (multiple tabs / devices). A connection id lives under at most one user.
type ConnectionRegistry struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]map[string]Sender
	owners map[string]uuid.UUID // conn id → owning user
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		users:  make(map[uuid.UUID]map[string]Sender),
		owners: make(map[string]uuid.UUID),
	}
}

// Register adds s under its user's set. Idempotent; a conn id already held
// by another user is moved, preserving the at-most-one-owner invariant.
func (r *ConnectionRegistry) Register(s Sender) {
	id := s.ConnectionID()
	user := s.UserID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.owners[id]; ok && prev != user {
		r.removeLocked(prev, id)
	}

	set := r.users[user]
	if set == nil {
		set = make(map[string]Sender)
		r.users[user] = set
	}
	set[id] = s
	r.owners[id] = user
}

// Unregister removes the connection from whichever user currently holds it.
// Unknown ids are a no-op (duplicate disconnect events are expected).
func (r *ConnectionRegistry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.owners[connID]
	if !ok {
		return
	}
	delete(r.owners, connID)
	r.removeLocked(user, connID)
}

func (r *ConnectionRegistry) removeLocked(user uuid.UUID, connID string) {
	if set, ok := r.users[user]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.users, user)
		}
	}
}

// ConnectionsFor returns a snapshot of the user's live connections. The
// slice is a copy; later register/unregister calls do not affect it.
func (r *ConnectionRegistry) ConnectionsFor(user uuid.UUID) []Sender {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.users[user]
	if len(set) == 0 {
		return nil
	}
	out := make([]Sender, 0, len(set))
	for _, s := range set {
		out = append(out, s)
	}
	return out
}

// Count reports the number of live connections across all users.
func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}
