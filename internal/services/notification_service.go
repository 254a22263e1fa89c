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

// NotificationService persists notifications and pushes the live copy. The
// row is written first; publish is best-effort on top of it, so an offline
// recipient still finds the notification in their history.
type NotificationService struct {
	repo        *repository.NotificationRepo
	broadcaster *realtime.Broadcaster
}

func NewNotificationService(repo *repository.NotificationRepo, broadcaster *realtime.Broadcaster) *NotificationService {
	return &NotificationService{repo: repo, broadcaster: broadcaster}
}

// Notify stores a notification for recipient and publishes it to their live
// connections.
func (s *NotificationService) Notify(ctx context.Context, recipient uuid.UUID, typ realtime.NotificationType, message string, actor *models.User, related *uuid.UUID) error {
	n := &models.Notification{
		ID:              uuid.New(),
		UserID:          recipient,
		Type:            string(typ),
		Message:         message,
		RelatedEntityID: related,
		CreatedAt:       time.Now(),
	}
	if actor != nil {
		n.ActorUserID = actor.ID
		n.ActorUserName = actor.DisplayName
		n.ActorAvatar = actor.ProfilePicture
	}

	if err := s.repo.Create(n); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", recipient.String()).Msg("Failed to create notification")
		return fmt.Errorf("create notification: %w", err)
	}
	s.broadcaster.PublishToUser(recipient, ToEvent(n))
	return nil
}

// NotifyGroup publishes a live-only notification to a broadcast group,
// excluding the actor's own connections. Group notifications are not stored
// per recipient.
func (s *NotificationService) NotifyGroup(groupKey string, typ realtime.NotificationType, message string, actor *models.User, related *uuid.UUID) {
	event := realtime.Notification{
		ID:              uuid.New(),
		Type:            typ,
		Message:         message,
		RelatedEntityID: related,
		CreatedAt:       time.Now(),
	}
	exclude := uuid.Nil
	if actor != nil {
		event.ActorUserID = actor.ID
		event.ActorUserName = actor.DisplayName
		event.ActorAvatar = actor.ProfilePicture
		exclude = actor.ID
	}
	s.broadcaster.PublishToGroup(groupKey, event, exclude)
}

func (s *NotificationService) List(ctx context.Context, user uuid.UUID, unread bool, limit int) ([]models.Notification, error) {
	list, err := s.repo.List(user, unread, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.String()).Msg("Failed to list notifications")
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, user, id uuid.UUID) error {
	if err := s.repo.MarkRead(user, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.String()).Str("notif_id", id.String()).Msg("Failed to mark notification as read")
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, user uuid.UUID) error {
	if err := s.repo.MarkAllRead(user); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.String()).Msg("Failed to mark all notifications as read")
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// ToEvent maps a stored notification row to its wire payload.
func ToEvent(n *models.Notification) realtime.Notification {
	return realtime.Notification{
		ID:              n.ID,
		Type:            realtime.NotificationType(n.Type),
		Message:         n.Message,
		ActorUserID:     n.ActorUserID,
		ActorUserName:   n.ActorUserName,
		ActorAvatar:     n.ActorAvatar,
		RelatedEntityID: n.RelatedEntityID,
		CreatedAt:       n.CreatedAt,
	}
}
