// Package notification persists notifications, fans them out to live
// stream subscribers and hands them to the broker for e-mail delivery.
package notification

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// BellLimit is how many notifications the bell dropdown shows.
const BellLimit = 10

// Repository is the storage contract for notifications.
type Repository interface {
	CreateNotification(ctx context.Context, n models.Notification) (*models.Notification, error)
	ListNotifications(ctx context.Context, userUID string, limit int) ([]*models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userUID string) (int, error)
	MarkNotificationRead(ctx context.Context, id, userUID string) (int, error)
}

// UserReader resolves the recipient's e-mail address for the broker event.
type UserReader interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// Publisher hands an event to the message broker.
type Publisher interface {
	Publish(routingkey string, message any) error
}

// Service implements notification delivery. The database row is the
// source of truth; the hub push and the broker publish are best effort.
type Service struct {
	repo      Repository
	users     UserReader
	hub       *Hub
	publisher Publisher
	log       *slog.Logger
}

// New creates a notification Service. publisher may be nil when the
// broker is not configured; e-mail delivery is then skipped.
func New(repo Repository, users UserReader, hub *Hub, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		hub:       hub,
		publisher: publisher,
		log:       log,
	}
}

// Notify stores a notification for userUID, pushes it to the user's live
// streams and publishes it for e-mail delivery.
func (s *Service) Notify(ctx context.Context, userUID, kind, title, content, link string) error {
	n := models.Notification{
		UserUID: userUID,
		Type:    kind,
		Title:   title,
		Content: content,
	}
	if link != "" {
		n.Link = &link
	}
	stored, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return err
	}

	s.hub.Publish(stored)

	if s.publisher == nil {
		return nil
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to resolve notification recipient", sl.Err(err))
		return nil
	}
	event := models.NotificationEvent{
		UserUID:  userUID,
		Email:    user.Email,
		FullName: user.FullName,
		Type:     kind,
		Title:    title,
		Content:  content,
		Link:     link,
	}
	if err := s.publisher.Publish(kind, event); err != nil {
		s.log.Warn("failed to publish notification event", sl.Err(err))
	}
	return nil
}

// List returns the bell content: the latest notifications and the unread
// count.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Notification, int, error) {
	items, err := s.repo.ListNotifications(ctx, userUID, BellLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnreadNotifications(ctx, userUID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead marks one of the user's notifications as read. Returns the
// number of updated rows (zero when already read or not the owner).
func (s *Service) MarkRead(ctx context.Context, id, userUID string) (int, error) {
	return s.repo.MarkNotificationRead(ctx, id, userUID)
}

// Subscribe opens a live stream of the user's notifications.
func (s *Service) Subscribe(userUID string) *Subscription {
	return s.hub.Subscribe(userUID)
}

// Unsubscribe closes a live stream.
func (s *Service) Unsubscribe(sub *Subscription) {
	s.hub.Unsubscribe(sub)
}
