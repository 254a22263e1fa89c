package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"
)

func newExchangeService(db *gorm.DB, b *realtime.Broadcaster) *ExchangeService {
	notifs := NewNotificationService(repository.NewNotificationRepo(db), b)
	return NewExchangeService(repository.NewExchangeRepo(db), repository.NewBookRepo(db), repository.NewUserRepo(db), notifs)
}

func createTestBook(t *testing.T, db *gorm.DB, owner *models.User) *models.Book {
	t.Helper()
	book := &models.Book{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		Title:     "The Great Gatsby",
		Author:    "F. Scott Fitzgerald",
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestExchangeSendNotifiesOwner(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newExchangeService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	requester := createTestUser(t, db, "requester")
	book := createTestBook(t, db, owner)

	ownerTab := newFakeSender(owner.ID)
	reg.Register(ownerTab)

	req, err := svc.Send(ctx, requester.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExchangeStatusPending, req.Status)
	assert.Equal(t, owner.ID, req.ReceiverID)

	envs := ownerTab.envelopes()
	require.Len(t, envs, 1)
	notif, ok := envs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, realtime.TypeExchangeRequestSent, notif.Type)
	assert.Equal(t, "requester", notif.ActorUserName)
}

func TestExchangeSendOwnBookRejected(t *testing.T) {
	db := setupTestDB(t)
	_, _, b := testFanout()
	svc := newExchangeService(db, b)

	owner := createTestUser(t, db, "owner")
	book := createTestBook(t, db, owner)

	_, err := svc.Send(context.Background(), owner.ID, book.ID)
	assert.ErrorIs(t, err, ErrOwnBook)
}

func TestExchangeAcceptNotifiesSender(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newExchangeService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	requester := createTestUser(t, db, "requester")
	book := createTestBook(t, db, owner)
	req, err := svc.Send(ctx, requester.ID, book.ID)
	require.NoError(t, err)

	requesterTab := newFakeSender(requester.ID)
	reg.Register(requesterTab)

	require.NoError(t, svc.Accept(ctx, owner.ID, req.ID))

	envs := requesterTab.envelopes()
	require.Len(t, envs, 1)
	notif, ok := envs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, realtime.TypeExchangeRequestAccepted, notif.Type)
}

func TestExchangeDecisionGuards(t *testing.T) {
	db := setupTestDB(t)
	_, _, b := testFanout()
	svc := newExchangeService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	requester := createTestUser(t, db, "requester")
	stranger := createTestUser(t, db, "stranger")
	book := createTestBook(t, db, owner)
	req, err := svc.Send(ctx, requester.ID, book.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Accept(ctx, stranger.ID, req.ID), ErrNotReceiver)

	require.NoError(t, svc.Reject(ctx, owner.ID, req.ID))
	assert.ErrorIs(t, svc.Accept(ctx, owner.ID, req.ID), ErrAlreadyDecided)
}

func TestExchangeRejectRaisesNoNotification(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newExchangeService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	requester := createTestUser(t, db, "requester")
	book := createTestBook(t, db, owner)
	req, err := svc.Send(ctx, requester.ID, book.ID)
	require.NoError(t, err)

	requesterTab := newFakeSender(requester.ID)
	reg.Register(requesterTab)

	require.NoError(t, svc.Reject(ctx, owner.ID, req.ID))
	assert.Empty(t, requesterTab.envelopes())
}
