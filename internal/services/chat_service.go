package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChatService persists direct messages and delivers them live. Delivery is
// point-to-point: the receiver gets the chat frame on the chat channel plus
// a MessageReceived notification.
type ChatService struct {
	repo        *repository.ChatRepo
	users       *repository.UserRepo
	broadcaster *realtime.Broadcaster
	notifs      *NotificationService
}

func NewChatService(repo *repository.ChatRepo, users *repository.UserRepo, broadcaster *realtime.Broadcaster, notifs *NotificationService) *ChatService {
	return &ChatService{repo: repo, users: users, broadcaster: broadcaster, notifs: notifs}
}

// Send stores the message, pushes it to the receiver's live connections and
// raises a MessageReceived notification for them.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID uuid.UUID, text string) error {
	if text == "" {
		return fmt.Errorf("empty message")
	}

	msg := &models.ChatMessage{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Save(msg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("sender_id", senderID.String()).Msg("Failed to save chat message")
		return fmt.Errorf("save chat message: %w", err)
	}

	s.broadcaster.SendDirect(realtime.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		SentAt:     msg.CreatedAt,
	})

	sender, err := s.users.Get(senderID)
	if err != nil {
		// Message is already stored and delivered; the notification is extra.
		log.Ctx(ctx).Warn().Err(err).Str("sender_id", senderID.String()).Msg("sender lookup failed, skipping notification")
		return nil
	}
	if err := s.notifs.Notify(ctx, receiverID, realtime.TypeMessageReceived,
		fmt.Sprintf("New message from %s", sender.DisplayName), sender, &msg.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("message notification failed")
	}
	return nil
}

// Conversation returns the recent messages between two users.
func (s *ChatService) Conversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	msgs, err := s.repo.Conversation(userID, peerID, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load conversation")
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return msgs, nil
}

// MarkRead flags the peer's messages to the user as read.
func (s *ChatService) MarkRead(ctx context.Context, userID, peerID uuid.UUID) error {
	if err := s.repo.MarkConversationRead(peerID, userID); err != nil {
		return fmt.Errorf("mark conversation read: %w", err)
	}
	return nil
}
