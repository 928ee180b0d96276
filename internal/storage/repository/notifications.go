package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// CreateNotification inserts a notification row and returns the stored row
// with its generated id and timestamp.
func (s *Storage) CreateNotification(ctx context.Context, n models.Notification) (*models.Notification, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notifications (user_uid, type, title, content, link)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		n.UserUID, n.Type, n.Title, n.Content, n.Link).Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}

// ListNotifications returns the latest notifications of a user.
func (s *Storage) ListNotifications(ctx context.Context, userUID string, limit int) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, type, title, content, link, created_at, read_at
			  FROM notifications
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Notification
	for rows.Next() {
		var item models.Notification
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Type, &item.Title,
			&item.Content, &item.Link, &item.CreatedAt, &item.ReadAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUnreadNotifications counts the user's notifications without read_at.
func (s *Storage) CountUnreadNotifications(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountUnreadNotifications"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM notifications
			  WHERE user_uid = $1 AND read_at IS NULL`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// MarkNotificationRead sets read_at on the user's own notification and
// returns the number of updated rows.
func (s *Storage) MarkNotificationRead(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notifications SET read_at = NOW()
			  WHERE id = $1 AND user_uid = $2 AND read_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
