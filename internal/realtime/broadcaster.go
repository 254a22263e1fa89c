package realtime

import (
	"github.com/google/uuid"

	"github.com/MAHMOUDBADAWY74/Graduation-project/pkg/log"
)

// Broadcaster fans a typed event out to the live connections of the matching
// users or group. Delivery is fire-and-forget: a failed send to one
// connection is logged and counted, never surfaced to the publisher, and
// never stops delivery to the remaining connections. A recipient with no
// live connection simply misses the live event; durable history is the
// persistence layer's concern.
type Broadcaster struct {
	registry *ConnectionRegistry
	groups   *GroupIndex
}

func NewBroadcaster(registry *ConnectionRegistry, groups *GroupIndex) *Broadcaster {
	return &Broadcaster{registry: registry, groups: groups}
}

// PublishToUser delivers n to every live connection of user.
func (b *Broadcaster) PublishToUser(user uuid.UUID, n Notification) {
	env := Envelope{Event: EventNotification, Data: n}
	for _, s := range b.registry.ConnectionsFor(user) {
		b.deliver(s, env)
	}
}

// PublishToGroup delivers n to every connection in the group, skipping all
// connections owned by excludeUser (pass uuid.Nil to exclude nobody). The
// exclusion covers every tab of that user, not just the one that acted.
func (b *Broadcaster) PublishToGroup(groupKey string, n Notification, excludeUser uuid.UUID) {
	env := Envelope{Event: EventNotification, Data: n}
	for _, s := range b.groups.MembersOf(groupKey) {
		if excludeUser != uuid.Nil && s.UserID() == excludeUser {
			continue
		}
		b.deliver(s, env)
	}
}

// SendDirect delivers a chat message to every live connection of its
// receiver. Same fire-and-forget semantics as notification fan-out, on a
// distinct wire event.
func (b *Broadcaster) SendDirect(msg ChatMessage) {
	env := Envelope{Event: EventChatMessage, Data: msg}
	for _, s := range b.registry.ConnectionsFor(msg.ReceiverID) {
		b.deliver(s, env)
	}
}

func (b *Broadcaster) deliver(s Sender, env Envelope) {
	if err := s.Send(env); err != nil {
		eventsDropped.WithLabelValues(env.Event).Inc()
		log.Logger.Warn().
			Err(err).
			Str("conn_id", s.ConnectionID()).
			Str("user_id", s.UserID().String()).
			Str("event", env.Event).
			Msg("delivery dropped")
		return
	}
	eventsDelivered.WithLabelValues(env.Event).Inc()
}
