package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anonto42/nano-blog/backend/internal/apperrors"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotifyParams describes one notification to fan out
type NotifyParams struct {
	RecipientID uint
	ActorID     uint
	Type        models.NotificationType
	Message     string
	PostID      *uint
	CommentID   *uint
}

// NotificationService writes notifications as a side effect of interactions
// and serves them back to their recipient.
type NotificationService struct {
	db        *gorm.DB
	publisher NotificationPublisher
}

func NewNotificationService(db *gorm.DB, publisher NotificationPublisher) *NotificationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &NotificationService{db: db, publisher: publisher}
}

// Notify creates an unread notification using tx, so it commits or rolls back
// together with the interaction that caused it. A nil tx writes directly.
func (s *NotificationService) Notify(ctx context.Context, tx *gorm.DB, p NotifyParams) (*models.Notification, error) {
	if tx == nil {
		tx = s.db
	}
	n := &models.Notification{
		RecipientID: p.RecipientID,
		ActorID:     p.ActorID,
		Type:        p.Type,
		Message:     p.Message,
		PostID:      p.PostID,
		CommentID:   p.CommentID,
		IsRead:      false,
	}
	if err := repositories.NewPostgresNotificationRepository(tx).CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// Publish hands committed notifications to the publisher. Failures are logged only.
func (s *NotificationService) Publish(ctx context.Context, notifications []*models.Notification) {
	for _, n := range notifications {
		if err := s.publisher.PublishNotification(ctx, n); err != nil {
			log.Printf("Failed to publish notification %d: %v", n.ID, err)
		}
	}
}

// List returns every notification addressed to userID
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	return repositories.NewPostgresNotificationRepository(s.db).GetByRecipientID(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return repositories.NewPostgresNotificationRepository(s.db).GetUnreadCount(ctx, userID)
}

// MarkRead flips the read flag. Marking an already read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uint) error {
	notifications := repositories.NewPostgresNotificationRepository(s.db)

	n, err := notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound("Notification not found")
		}
		return err
	}
	if err := requireOwner(n.RecipientID, userID); err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	return notifications.MarkAsRead(ctx, notificationID)
}

// MarkAllRead returns how many notifications changed state
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return repositories.NewPostgresNotificationRepository(s.db).MarkAllAsRead(ctx, userID)
}
