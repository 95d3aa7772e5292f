package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skirentals-backend/internal/domain"
)

func TestGetNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("returns notes with unread count", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := NewNotificationService(noteRepo)
		noteRepo.On("List", mock.Anything, int32(10), int32(50)).Return([]domain.Notification{
			{ID: 1, UserID: 10, IsRead: false},
			{ID: 2, UserID: 10, IsRead: true},
		}, nil)
		noteRepo.On("CountUnread", mock.Anything, int32(10)).Return(int32(1), nil)

		notes, unread, err := svc.GetNotifications(ctx, patronIdentity, 0) // limit defaults to 50
		require.NoError(t, err)
		assert.Len(t, notes, 2)
		assert.Equal(t, int32(1), unread)
		noteRepo.AssertExpectations(t)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := NewNotificationService(noteRepo)
		noteRepo.On("List", mock.Anything, int32(10), int32(50)).Return([]domain.Notification{}, nil)
		noteRepo.On("CountUnread", mock.Anything, int32(10)).Return(int32(0), nil)

		_, _, err := svc.GetNotifications(ctx, patronIdentity, 5000)
		require.NoError(t, err)
		noteRepo.AssertExpectations(t)
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		svc := NewNotificationService(new(MockNotificationRepo))
		_, _, err := svc.GetNotifications(ctx, domain.Anonymous, 10)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestMarkNotificationsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a single note scoped to the caller", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := NewNotificationService(noteRepo)
		noteRepo.On("MarkAsRead", mock.Anything, int32(3), int32(10)).Return(nil)

		assert.NoError(t, svc.MarkAsRead(ctx, patronIdentity, 3))
	})

	t.Run("marks everything", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := NewNotificationService(noteRepo)
		noteRepo.On("MarkAllAsRead", mock.Anything, int32(10)).Return(nil)

		assert.NoError(t, svc.MarkAllAsRead(ctx, patronIdentity))
	})
}
