package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/models"
)

// ChatRepository provides access to the append-only chat log.
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Recent returns the most-recent n messages in chronological order. The
// window is taken newest-first and reversed, so when the log exceeds n the
// oldest turns silently fall out.
func (r *ChatRepository) Recent(ctx context.Context, n int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.NewStore("recent chat messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Append adds one message to the log.
func (r *ChatRepository) Append(ctx context.Context, role models.Role, content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.NewValidation("Message is required")
	}

	message := models.ChatMessage{
		Role:    role,
		Content: content,
	}
	if err := r.db.WithContext(ctx).Create(&message).Error; err != nil {
		return apperrors.NewStore("append chat message", err)
	}
	return nil
}

// Clear deletes every message unconditionally.
func (r *ChatRepository) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ChatMessage{}).Error
	if err != nil {
		return apperrors.NewStore("clear chat history", err)
	}
	return nil
}
