package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentalmarket/core/models"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

// ListMessages returns a conversation's messages ordered by (CreatedAt, ID)
// for a stable total order, most recent last.
func (s *Store) ListMessages(ctx context.Context, conversationID uuid.UUID, page, pageSize int) ([]models.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	q := s.DB.WithContext(ctx).Model(&models.Message{}).Where("conversation_id = ?", conversationID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Message
	err := q.Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// MarkRead sets IsRead = true on every message in the conversation not
// sent by actor.
func (s *Store) MarkRead(ctx context.Context, conversationID, actor uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, actor).
		Update("is_read", true).Error
}
