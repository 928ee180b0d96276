// Package message contains direct messaging: sending and the grouping of
// a flat message list into per-counterpart conversations.
package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// FallbackCounterpartName is shown when the counterpart's profile carries
// no usable name.
const FallbackCounterpartName = "Nieznany użytkownik"

// Repository is the storage contract for messages.
type Repository interface {
	CreateMessage(ctx context.Context, m models.Message) (string, error)
	ListMessagesForUser(ctx context.Context, userUID string) ([]*models.Message, error)
}

// Notifier delivers a notification to a user.
type Notifier interface {
	Notify(ctx context.Context, userUID, kind, title, content, link string) error
}

// UserReader resolves the sender's display name for the notification.
type UserReader interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// Service implements sending and conversation listing.
type Service struct {
	repo     Repository
	users    UserReader
	notifier Notifier
	log      *slog.Logger
}

// New creates a message Service.
func New(repo Repository, users UserReader, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// Send stores a message from senderUID and notifies the recipient. A
// notification failure never fails the send.
func (s *Service) Send(ctx context.Context, senderUID string, req models.DummyMessage) (string, error) {
	if req.RecipientUID == senderUID {
		return "", fmt.Errorf("cannot message yourself")
	}
	m := models.Message{
		SenderUID:    senderUID,
		RecipientUID: req.RecipientUID,
		ListingID:    req.ListingID,
		Content:      req.Content,
	}
	id, err := s.repo.CreateMessage(ctx, m)
	if err != nil {
		return "", err
	}

	senderName := FallbackCounterpartName
	if sender, err := s.users.GetUser(ctx, senderUID); err == nil && sender.FullName != "" {
		senderName = sender.FullName
	}
	if err := s.notifier.Notify(ctx, req.RecipientUID,
		models.NotificationMessage,
		"Nowa wiadomość",
		fmt.Sprintf("%s wysłał(a) Ci wiadomość", senderName),
		"/messages"); err != nil {
		s.log.Warn("failed to notify recipient", sl.Err(err))
	}
	return id, nil
}

// ListConversations loads every message the user took part in and groups
// them by counterpart.
func (s *Service) ListConversations(ctx context.Context, userUID string) ([]*models.Conversation, error) {
	messages, err := s.repo.ListMessagesForUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return GroupConversations(userUID, messages), nil
}

// GroupConversations buckets a newest-first message list into one
// conversation per counterpart. Conversations keep the order in which
// their counterparts first appear, so the thread with the newest message
// comes first; messages keep their incoming order inside each bucket.
func GroupConversations(userUID string, messages []*models.Message) []*models.Conversation {
	byCounterpart := make(map[string]*models.Conversation)
	var order []string

	for _, m := range messages {
		counterpartUID := m.SenderUID
		counterpartName := m.SenderName
		if m.SenderUID == userUID {
			counterpartUID = m.RecipientUID
			counterpartName = m.RecipientName
		}
		if counterpartName == "" {
			counterpartName = FallbackCounterpartName
		}

		conv, ok := byCounterpart[counterpartUID]
		if !ok {
			conv = &models.Conversation{
				CounterpartUID:  counterpartUID,
				CounterpartName: counterpartName,
			}
			byCounterpart[counterpartUID] = conv
			order = append(order, counterpartUID)
		}
		conv.Messages = append(conv.Messages, m)
	}

	result := make([]*models.Conversation, 0, len(order))
	for _, uid := range order {
		result = append(result, byCounterpart[uid])
	}
	return result
}
