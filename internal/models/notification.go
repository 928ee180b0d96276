package models

import "time"

// Notification types.
const (
	NotificationMessage = "message"
	NotificationLike    = "like"
	NotificationSystem  = "system"
)

// Notification is a user-scoped event shown in the bell dropdown.
type Notification struct {
	ID        string     `json:"id"`
	UserUID   string     `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Link      *string    `json:"link,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// NotificationEvent is the payload published to the notifications exchange
// for out-of-band delivery (e-mail) by the notifier.
type NotificationEvent struct {
	UserUID   string `json:"user_uid"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Link      string `json:"link,omitempty"`
}
