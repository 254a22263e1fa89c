package realtime

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the closed set of push event tags. New notification
// kinds must be added here, never sent as free-form strings.
type NotificationType string

const (
	TypePostLike                NotificationType = "PostLike"
	TypePostUnlike              NotificationType = "PostUnlike"
	TypePostComment             NotificationType = "PostComment"
	TypePostShare               NotificationType = "PostShare"
	TypePostAccepted            NotificationType = "PostAccepted"
	TypePostRejected            NotificationType = "PostRejected"
	TypeBookAdded               NotificationType = "BookAdded"
	TypeMessageReceived         NotificationType = "MessageReceived"
	TypeModeratorAssigned       NotificationType = "ModeratorAssigned"
	TypeModeratorRemoved        NotificationType = "ModeratorRemoved"
	TypeCommunityBan            NotificationType = "CommunityBan"
	TypeCommunityUnban          NotificationType = "CommunityUnban"
	TypeExchangeRequestSent     NotificationType = "ExchangeRequestSent"
	TypeExchangeRequestAccepted NotificationType = "ExchangeRequestAccepted"
)

// Known reports whether t is one of the declared tags.
func (t NotificationType) Known() bool {
	switch t {
	case TypePostLike, TypePostUnlike, TypePostComment, TypePostShare,
		TypePostAccepted, TypePostRejected, TypeBookAdded, TypeMessageReceived,
		TypeModeratorAssigned, TypeModeratorRemoved, TypeCommunityBan,
		TypeCommunityUnban, TypeExchangeRequestSent, TypeExchangeRequestAccepted:
		return true
	}
	return false
}

// Envelope method names on the wire.
const (
	EventNotification = "notification"
	EventChatMessage  = "chat.message"
	EventReadAck      = "notification.read"
)

// Envelope is the single frame shape delivered to clients. Event tells the
// client which payload Data carries.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Notification is the live push payload for a domain event. Immutable once
// constructed; the durable copy (if any) is persisted by the caller before
// publishing.
type Notification struct {
	ID              uuid.UUID        `json:"id"`
	Type            NotificationType `json:"type"`
	Message         string           `json:"message"`
	ActorUserID     uuid.UUID        `json:"actorUserId"`
	ActorUserName   string           `json:"actorUserName"`
	ActorAvatar     string           `json:"actorAvatar,omitempty"`
	RelatedEntityID *uuid.UUID       `json:"relatedEntityId,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ChatMessage is a point-to-point payload; it is delivered only to the
// receiver's connections, never broadcast.
type ChatMessage struct {
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sentAt"`
}
