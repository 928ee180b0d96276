package models

import "time"

// Message is a direct message between two users, optionally tied to a
// listing. Messages are immutable once created.
type Message struct {
	ID            string     `json:"id"`
	SenderUID     string     `json:"sender_id"`
	RecipientUID  string     `json:"recipient_id"`
	ListingID     *string    `json:"listing_id,omitempty"`
	Content       string     `json:"content"`
	CreatedAt     time.Time  `json:"created_at"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	SenderName    string     `json:"sender_name,omitempty"`
	RecipientName string     `json:"recipient_name,omitempty"`
}

// DummyMessage receives a new message from a JSON request.
type DummyMessage struct {
	RecipientUID string  `json:"recipient_id" validate:"required,uuid"`
	ListingID    *string `json:"listing_id,omitempty" validate:"omitempty,uuid"`
	Content      string  `json:"content" validate:"required,min=1,max=4000"`
}

// Conversation is the thread between the current user and one counterpart.
// Messages keep the order they arrived in from the query (newest first).
type Conversation struct {
	CounterpartUID  string     `json:"user_id"`
	CounterpartName string     `json:"name"`
	Messages        []*Message `json:"messages"`
}
