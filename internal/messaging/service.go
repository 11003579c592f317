// Package messaging implements the Messaging Service: conversation
// open-or-create, message send, mark-read.
package messaging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

type Service struct {
	store *store.Store
	clock clock.Clock
}

func NewService(s *store.Store, c clock.Clock) *Service {
	return &Service{store: s, clock: c}
}

// OpenOrCreateConversation normalizes the pair, validates booking
// participation when a booking is supplied, and either returns the
// existing conversation or creates one — a lost race on creation returns
// the winner.
func (svc *Service) OpenOrCreateConversation(ctx context.Context, actor, counterparty uuid.UUID, bookingID *uuid.UUID) (*models.Conversation, error) {
	p1, p2 := models.NormalizePair(actor, counterparty)

	if bookingID != nil {
		b, err := svc.store.GetBooking(ctx, *bookingID)
		if err == store.ErrNotFound {
			return nil, apperr.ErrBookingNotFound
		}
		if err != nil {
			return nil, apperr.Internal("loading booking", err)
		}
		if actor != b.RenterID && actor != b.OwnerID {
			return nil, apperr.ErrNotParticipant
		}
	}

	existing, err := svc.store.FindConversation(ctx, p1, p2, bookingID)
	if err == nil {
		return existing, nil
	}
	if err != store.ErrNotFound {
		return nil, apperr.Internal("looking up conversation", err)
	}

	c := &models.Conversation{P1ID: p1, P2ID: p2, BookingID: bookingID}
	if err := svc.store.CreateConversation(ctx, c); err != nil {
		if err == store.ErrConversationExists {
			winner, err := svc.store.FindConversation(ctx, p1, p2, bookingID)
			if err != nil {
				return nil, apperr.Internal("re-reading conversation after lost race", err)
			}
			return winner, nil
		}
		return nil, apperr.Internal("creating conversation", err)
	}
	return c, nil
}

// SendMessage appends a message to the conversation and touches its
// UpdatedAt.
func (svc *Service) SendMessage(ctx context.Context, actor, conversationID uuid.UUID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.ErrEmptyMessage
	}

	c, err := svc.store.GetConversation(ctx, conversationID)
	if err == store.ErrNotFound {
		return nil, apperr.ErrNotParticipant
	}
	if err != nil {
		return nil, apperr.Internal("loading conversation", err)
	}
	if actor != c.P1ID && actor != c.P2ID {
		return nil, apperr.ErrNotParticipant
	}

	m := &models.Message{
		ConversationID: conversationID,
		SenderID:       actor,
		Content:        content,
		IsRead:         false,
		CreatedAt:      svc.clock.Now(),
	}
	if err := svc.store.CreateMessage(ctx, m); err != nil {
		return nil, apperr.Internal("creating message", err)
	}
	if err := svc.store.TouchConversation(ctx, conversationID); err != nil {
		return nil, apperr.Internal("touching conversation", err)
	}
	return m, nil
}

// MarkRead marks every message not sent by actor as read.
func (svc *Service) MarkRead(ctx context.Context, actor, conversationID uuid.UUID) error {
	c, err := svc.store.GetConversation(ctx, conversationID)
	if err == store.ErrNotFound {
		return apperr.ErrNotParticipant
	}
	if err != nil {
		return apperr.Internal("loading conversation", err)
	}
	if actor != c.P1ID && actor != c.P2ID {
		return apperr.ErrNotParticipant
	}
	return svc.store.MarkRead(ctx, conversationID, actor)
}

// ListMessages returns a page of a conversation's messages.
func (svc *Service) ListMessages(ctx context.Context, actor, conversationID uuid.UUID, page, pageSize int) ([]models.Message, int64, error) {
	c, err := svc.store.GetConversation(ctx, conversationID)
	if err == store.ErrNotFound {
		return nil, 0, apperr.ErrNotParticipant
	}
	if err != nil {
		return nil, 0, apperr.Internal("loading conversation", err)
	}
	if actor != c.P1ID && actor != c.P2ID {
		return nil, 0, apperr.ErrNotParticipant
	}
	return svc.store.ListMessages(ctx, conversationID, page, pageSize)
}
