package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// GroupAllUsers is the broadcast group every authenticated connection joins.
const GroupAllUsers = "all-users"

// CommunityGroup names the broadcast group for one community.
func CommunityGroup(communityID uuid.UUID) string {
	return "community:" + communityID.String()
}

// GroupIndex maps group keys to connection sets. Membership is a cache
// computed at connect time; it can go stale against the domain store until
// the connection is re-established.
type GroupIndex struct {
	mu     sync.RWMutex
	groups map[string]map[string]Sender
	joined map[string]map[string]struct{} // conn id → group keys
}

func NewGroupIndex() *GroupIndex {
	return &GroupIndex{
		groups: make(map[string]map[string]Sender),
		joined: make(map[string]map[string]struct{}),
	}
}

// Join adds s to the group. Idempotent.
func (g *GroupIndex) Join(groupKey string, s Sender) {
	id := s.ConnectionID()

	g.mu.Lock()
	defer g.mu.Unlock()

	set := g.groups[groupKey]
	if set == nil {
		set = make(map[string]Sender)
		g.groups[groupKey] = set
	}
	set[id] = s

	keys := g.joined[id]
	if keys == nil {
		keys = make(map[string]struct{})
		g.joined[id] = keys
	}
	keys[groupKey] = struct{}{}
}

// Leave removes the connection from the group. Idempotent.
func (g *GroupIndex) Leave(groupKey, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.leaveLocked(groupKey, connID)
}

// LeaveAll removes the connection from every group it joined. Called on
// disconnect; a second call is a no-op.
func (g *GroupIndex) LeaveAll(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key := range g.joined[connID] {
		g.leaveLocked(key, connID)
	}
}

func (g *GroupIndex) leaveLocked(groupKey, connID string) {
	if set, ok := g.groups[groupKey]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(g.groups, groupKey)
		}
	}
	if keys, ok := g.joined[connID]; ok {
		delete(keys, groupKey)
		if len(keys) == 0 {
			delete(g.joined, connID)
		}
	}
}

// MembersOf returns a snapshot of the group's connections.
func (g *GroupIndex) MembersOf(groupKey string) []Sender {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set := g.groups[groupKey]
	if len(set) == 0 {
		return nil
	}
	out := make([]Sender, 0, len(set))
	for _, s := range set {
		out = append(out, s)
	}
	return out
}

// GroupsOf returns the group keys the connection currently belongs to.
func (g *GroupIndex) GroupsOf(connID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := g.joined[connID]
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	return out
}
