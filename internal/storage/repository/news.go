package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// CreateNews inserts a news item and returns its id.
func (s *Storage) CreateNews(ctx context.Context, n models.News) (string, error) {
	const op = "storage.CreateNews"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO news (title, content, category, image_url)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		n.Title, n.Content, n.Category, n.ImageURL).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListNews returns the latest news items.
func (s *Storage) ListNews(ctx context.Context, limit, offset int) ([]*models.News, error) {
	const op = "storage.ListNews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, category, image_url, created_at
			  FROM news
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.News
	for rows.Next() {
		var item models.News
		if err := rows.Scan(&item.ID, &item.Title, &item.Content,
			&item.Category, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
