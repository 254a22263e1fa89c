package repository

import (
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Save inserts a new chat message record.
func (r *ChatRepo) Save(m *models.ChatMessage) error {
	return r.db.Create(m).Error
}

// Conversation retrieves the most recent messages between two users, newest first.
func (r *ChatRepo) Conversation(a, b uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead flags everything sent by `from` to `to` as read.
func (r *ChatRepo) MarkConversationRead(from, to uuid.UUID) error {
	return r.db.
		Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = FALSE", from, to).
		Update("is_read", true).Error
}
