package message_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
	"github.com/magabrotheeeer/city-classifieds/internal/services/message"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateMessage(ctx context.Context, msg models.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListMessagesForUser(ctx context.Context, userUID string) ([]*models.Message, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

type UsersMock struct {
	mock.Mock
}

func (m *UsersMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(ctx context.Context, userUID, kind, title, content, link string) error {
	args := m.Called(ctx, userUID, kind, title, content, link)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func msg(id, sender, recipient, senderName, recipientName string, at time.Time) *models.Message {
	return &models.Message{
		ID:            id,
		SenderUID:     sender,
		RecipientUID:  recipient,
		SenderName:    senderName,
		RecipientName: recipientName,
		Content:       "treść",
		CreatedAt:     at,
	}
}

func TestGroupConversations_PartitionsByCounterpart(t *testing.T) {
	now := time.Now()
	// newest first, as the query returns them
	messages := []*models.Message{
		msg("m4", "bob", "alice", "Bob", "Alice", now),
		msg("m3", "alice", "carol", "Alice", "Carol", now.Add(-time.Minute)),
		msg("m2", "alice", "bob", "Alice", "Bob", now.Add(-2*time.Minute)),
		msg("m1", "carol", "alice", "Carol", "Alice", now.Add(-3*time.Minute)),
	}

	convs := message.GroupConversations("alice", messages)

	assert.Len(t, convs, 2)

	// thread with the newest message comes first
	assert.Equal(t, "bob", convs[0].CounterpartUID)
	assert.Equal(t, "Bob", convs[0].CounterpartName)
	assert.Equal(t, []string{"m4", "m2"}, ids(convs[0].Messages))

	assert.Equal(t, "carol", convs[1].CounterpartUID)
	assert.Equal(t, []string{"m3", "m1"}, ids(convs[1].Messages))

	// every message lands in exactly one conversation
	total := 0
	for _, c := range convs {
		total += len(c.Messages)
	}
	assert.Equal(t, len(messages), total)
}

func TestGroupConversations_FallbackName(t *testing.T) {
	messages := []*models.Message{
		msg("m1", "ghost", "alice", "", "Alice", time.Now()),
	}

	convs := message.GroupConversations("alice", messages)

	assert.Len(t, convs, 1)
	assert.Equal(t, message.FallbackCounterpartName, convs[0].CounterpartName)
}

func TestGroupConversations_Empty(t *testing.T) {
	convs := message.GroupConversations("alice", nil)
	assert.Empty(t, convs)
}

func TestSend_StoresAndNotifies(t *testing.T) {
	repo := new(RepoMock)
	users := new(UsersMock)
	notifier := new(NotifierMock)
	svc := message.New(repo, users, notifier, testLogger())

	req := models.DummyMessage{
		RecipientUID: "22222222-2222-2222-2222-222222222222",
		Content:      "Dzień dobry",
	}
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m models.Message) bool {
		return m.SenderUID == "sender-uid" && m.RecipientUID == req.RecipientUID
	})).Return("msg-id", nil).Once()
	users.On("GetUser", mock.Anything, "sender-uid").
		Return(&models.User{UID: "sender-uid", FullName: "Jan Kowalski"}, nil).Once()
	notifier.On("Notify", mock.Anything, req.RecipientUID, models.NotificationMessage,
		"Nowa wiadomość", "Jan Kowalski wysłał(a) Ci wiadomość", "/messages").
		Return(nil).Once()

	id, err := svc.Send(context.Background(), "sender-uid", req)

	assert.NoError(t, err)
	assert.Equal(t, "msg-id", id)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSend_NotificationFailureDoesNotFailSend(t *testing.T) {
	repo := new(RepoMock)
	users := new(UsersMock)
	notifier := new(NotifierMock)
	svc := message.New(repo, users, notifier, testLogger())

	repo.On("CreateMessage", mock.Anything, mock.Anything).Return("msg-id", nil).Once()
	users.On("GetUser", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down")).Once()
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	id, err := svc.Send(context.Background(), "sender-uid", models.DummyMessage{
		RecipientUID: "22222222-2222-2222-2222-222222222222",
		Content:      "hej",
	})

	assert.NoError(t, err)
	assert.Equal(t, "msg-id", id)
}

func TestSend_RejectsSelfMessage(t *testing.T) {
	svc := message.New(new(RepoMock), new(UsersMock), new(NotifierMock), testLogger())

	_, err := svc.Send(context.Background(), "same-uid", models.DummyMessage{
		RecipientUID: "same-uid",
		Content:      "halo",
	})

	assert.Error(t, err)
}

func ids(messages []*models.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}
