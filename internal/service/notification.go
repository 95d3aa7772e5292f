package service

import (
	"context"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, actor domain.Identity, limit int32) ([]domain.Notification, int32, error) {
	if !actor.IsAuthenticated() {
		return nil, 0, domain.ErrForbidden
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	notes, err := s.noteRepo.List(ctx, actor.UserID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.noteRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	return notes, unread, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, actor domain.Identity, notificationID int32) error {
	if !actor.IsAuthenticated() {
		return domain.ErrForbidden
	}
	return s.noteRepo.MarkAsRead(ctx, notificationID, actor.UserID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, actor domain.Identity) error {
	if !actor.IsAuthenticated() {
		return domain.ErrForbidden
	}
	return s.noteRepo.MarkAllAsRead(ctx, actor.UserID)
}
