// Package events publishes committed notifications to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/nats-io/nats.go"
)

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
}

// NotificationEvent is the message body sent for every new notification
type NotificationEvent struct {
	ID          uint                    `json:"id"`
	RecipientID uint                    `json:"recipient_id"`
	ActorID     uint                    `json:"actor_id"`
	Type        models.NotificationType `json:"type"`
	Message     string                  `json:"message"`
	PostID      *uint                   `json:"post_id,omitempty"`
	CommentID   *uint                   `json:"comment_id,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// NATSPublisher sends notification events on a single subject
type NATSPublisher struct {
	conn    Conn
	subject string
}

func NewNATSPublisher(conn Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

// PublishNotification encodes n and publishes it. Delivery is fire-and-forget.
func (p *NATSPublisher) PublishNotification(_ context.Context, n *models.Notification) error {
	data, err := json.Marshal(NotificationEvent{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		ActorID:     n.ActorID,
		Type:        n.Type,
		Message:     n.Message,
		PostID:      n.PostID,
		CommentID:   n.CommentID,
		CreatedAt:   n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode notification event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", p.subject, err)
	}
	return nil
}

// Connect dials NATS, retrying while the server comes up
func Connect(url string, attempts int, wait time.Duration) (*nats.Conn, error) {
	var conn *nats.Conn
	var err error
	for i := 0; i < attempts; i++ {
		conn, err = nats.Connect(url, nats.Name("blog-api"))
		if err == nil {
			log.Println("Successfully connected to NATS!")
			return conn, nil
		}
		log.Printf("Waiting for NATS to be ready... (%v)", err)
		time.Sleep(wait)
	}
	return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
}
