package services

import (
	"context"

	"github.com/anonto42/nano-blog/backend/internal/models"
)

// NotificationPublisher receives notifications after the transaction that
// created them has committed.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, notification *models.Notification) error
}

// NoopPublisher drops every notification
type NoopPublisher struct{}

func (NoopPublisher) PublishNotification(context.Context, *models.Notification) error { return nil }
