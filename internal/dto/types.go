package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type AddBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
}

type CreatePostRequest struct {
	CommunityID uuid.UUID `json:"communityId"`
	Content     string    `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type MemberActionRequest struct {
	CommunityID uuid.UUID `json:"communityId"`
	UserID      uuid.UUID `json:"userId"`
}

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiverId"`
	Message    string    `json:"message"`
}

type ExchangeRequestCreate struct {
	BookID uuid.UUID `json:"bookId"`
}
