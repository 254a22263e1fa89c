package models

import (
	"time"

	"github.com/google/uuid"
)

// -------------------------------
// Identity & Profile Models
// -------------------------------

type User struct {
	ID             uuid.UUID `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash   string    `json:"-"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// -------------------------------
// Catalogue Models
// -------------------------------

type Book struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"index" json:"ownerId"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ===================== Communities =====================

type Community struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CommunityMember struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"index:idx_member_community;index:idx_member_pair,unique" json:"communityId"`
	UserID      uuid.UUID `gorm:"index:idx_member_user;index:idx_member_pair,unique" json:"userId"`
	IsModerator bool      `json:"isModerator"`
	IsBanned    bool      `json:"isBanned"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// PostStatus values for CommunityPost.Status.
const (
	PostStatusPending  = "pending"
	PostStatusAccepted = "accepted"
	PostStatusRejected = "rejected"
)

type CommunityPost struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"index" json:"communityId"`
	AuthorID    uuid.UUID `gorm:"index" json:"authorId"`
	Content     string    `json:"content"`
	Status      string    `gorm:"index" json:"status"` // pending, accepted, rejected
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PostComment struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"index" json:"postId"`
	AuthorID  uuid.UUID `gorm:"index" json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostLike struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"index:idx_like_pair,unique" json:"postId"`
	UserID    uuid.UUID `gorm:"index:idx_like_pair,unique" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ===================== Exchange =====================

const (
	ExchangeStatusPending  = "pending"
	ExchangeStatusAccepted = "accepted"
	ExchangeStatusRejected = "rejected"
)

type ExchangeRequest struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	BookID     uuid.UUID `gorm:"index" json:"bookId"`
	SenderID   uuid.UUID `gorm:"index" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"index" json:"receiverId"`
	Status     string    `gorm:"index" json:"status"` // pending, accepted, rejected
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ===================== Notification =====================

type Notification struct {
	ID              uuid.UUID  `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"index" json:"userId"`
	Type            string     `json:"type"`
	Message         string     `json:"message"`
	ActorUserID     uuid.UUID  `json:"actorUserId"`
	ActorUserName   string     `json:"actorUserName"`
	ActorAvatar     string     `json:"actorAvatar,omitempty"`
	RelatedEntityID *uuid.UUID `json:"relatedEntityId,omitempty"`
	IsRead          bool       `gorm:"index" json:"isRead"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ===================== Chat =====================

type ChatMessage struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"index" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"index" json:"receiverId"`
	Message    string    `json:"message"`
	IsRead     bool      `gorm:"index" json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}
