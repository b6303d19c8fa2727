package service

import (
	"context"

	"gearshare-booking-engine/internal/domain"
	"gearshare-booking-engine/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.noteRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID int32) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}
