package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// CreateMessage inserts a new message and returns its id.
func (s *Storage) CreateMessage(ctx context.Context, m models.Message) (string, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO messages (sender_uid, recipient_uid, listing_id, content)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		m.SenderUID, m.RecipientUID, m.ListingID, m.Content).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessagesForUser returns every message the user sent or received,
// newest first, with both party names resolved. The whole history loads in
// one query; the conversation view has no pagination.
func (s *Storage) ListMessagesForUser(ctx context.Context, userUID string) ([]*models.Message, error) {
	const op = "storage.ListMessagesForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.sender_uid, m.recipient_uid, m.listing_id,
			      m.content, m.created_at, m.read_at,
			      sender.full_name, recipient.full_name
			  FROM messages m
			  JOIN users sender ON m.sender_uid = sender.uid
			  JOIN users recipient ON m.recipient_uid = recipient.uid
			  WHERE m.sender_uid = $1 OR m.recipient_uid = $1
			  ORDER BY m.created_at DESC, m.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		if err := rows.Scan(&item.ID, &item.SenderUID, &item.RecipientUID,
			&item.ListingID, &item.Content, &item.CreatedAt, &item.ReadAt,
			&item.SenderName, &item.RecipientName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
