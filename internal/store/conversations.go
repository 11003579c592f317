package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/models"
)

// FindConversation looks up an existing conversation for the normalized
// pair and optional booking context.
func (s *Store) FindConversation(ctx context.Context, p1, p2 uuid.UUID, bookingID *uuid.UUID) (*models.Conversation, error) {
	q := s.DB.WithContext(ctx).Where("p1_id = ? AND p2_id = ?", p1, p2)
	if bookingID != nil {
		q = q.Where("booking_id = ?", *bookingID)
	} else {
		q = q.Where("booking_id IS NULL")
	}
	var c models.Conversation
	err := q.Take(&c).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateConversation inserts a new conversation; a uniqueness violation
// (lost race between two concurrent openers) is translated to
// ErrConversationExists so the caller can re-read and return the winner.
func (s *Store) CreateConversation(ctx context.Context, c *models.Conversation) error {
	err := s.DB.WithContext(ctx).Create(c).Error
	if err != nil && isUniqueViolation(err) {
		return ErrConversationExists
	}
	return err
}

func (s *Store) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var c models.Conversation
	err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) TouchConversation(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&models.Conversation{}).Where("id = ?", id).
		Update("updated_at", gorm.Expr("now()")).Error
}
