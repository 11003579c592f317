package messaging_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/messaging"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

func openTestService(t *testing.T) (*messaging.Service, *store.Store) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping messaging integration test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		for _, table := range []string{"messages", "conversations", "users"} {
			db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		}
	})
	s := store.New(db)
	return messaging.NewService(s, clock.System{}), s
}

func twoUsers(t *testing.T, s *store.Store) (a, b *models.User) {
	t.Helper()
	a = &models.User{Email: "a@msg.test", PasswordHash: "x"}
	b = &models.User{Email: "b@msg.test", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), a))
	require.NoError(t, s.CreateUser(context.Background(), b))
	return a, b
}

func TestOpenOrCreateConversation_ReturnsSameConversationForEitherActorOrder(t *testing.T) {
	svc, s := openTestService(t)
	a, b := twoUsers(t, s)

	c1, err := svc.OpenOrCreateConversation(context.Background(), a.ID, b.ID, nil)
	require.NoError(t, err)

	c2, err := svc.OpenOrCreateConversation(context.Background(), b.ID, a.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
}

func TestSendMessage_RejectsNonParticipant(t *testing.T) {
	svc, s := openTestService(t)
	a, b := twoUsers(t, s)
	stranger := &models.User{Email: "stranger@msg.test", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), stranger))

	conv, err := svc.OpenOrCreateConversation(context.Background(), a.ID, b.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), stranger.ID, conv.ID, "hello")
	assert.ErrorIs(t, err, apperr.ErrNotParticipant)
}

func TestSendMessage_RejectsEmptyContent(t *testing.T) {
	svc, s := openTestService(t)
	a, b := twoUsers(t, s)
	conv, err := svc.OpenOrCreateConversation(context.Background(), a.ID, b.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), a.ID, conv.ID, "   ")
	assert.ErrorIs(t, err, apperr.ErrEmptyMessage)
}

func TestMarkRead_OnlyAffectsCounterpartyMessages(t *testing.T) {
	svc, s := openTestService(t)
	a, b := twoUsers(t, s)
	conv, err := svc.OpenOrCreateConversation(context.Background(), a.ID, b.ID, nil)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), a.ID, conv.ID, "from a")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), b.ID, conv.ID, "from b")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), b.ID, conv.ID))

	msgs, _, err := svc.ListMessages(context.Background(), a.ID, conv.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		if m.SenderID == a.ID {
			assert.True(t, m.IsRead, "message from a should be marked read once b reads it")
		} else {
			assert.False(t, m.IsRead, "message from b should not be marked read by b's own MarkRead call")
		}
	}
}
