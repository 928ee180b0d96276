// Package news contains city-hall announcements. Publishing is gated by
// an admin token stored per user.
package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// ErrNotAdmin is returned when the caller holds no admin token.
var ErrNotAdmin = errors.New("user holds no admin token")

// Repository is the storage contract for news.
type Repository interface {
	CreateNews(ctx context.Context, n models.News) (string, error)
	ListNews(ctx context.Context, limit, offset int) ([]*models.News, error)
	HasAdminToken(ctx context.Context, userUID string) (bool, error)
}

// Service implements news publishing and the public feed.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a news Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create publishes a news item on behalf of authorUID. The author must
// hold an admin token and the category must belong to the closed set.
func (s *Service) Create(ctx context.Context, authorUID string, req models.DummyNews) (string, error) {
	isAdmin, err := s.repo.HasAdminToken(ctx, authorUID)
	if err != nil {
		return "", err
	}
	if !isAdmin {
		return "", ErrNotAdmin
	}
	if !models.IsNewsCategory(req.Category) {
		return "", fmt.Errorf("unknown category: %s", req.Category)
	}

	id, err := s.repo.CreateNews(ctx, models.News{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return "", err
	}
	s.log.Info("published news item", slog.String("id", id))
	return id, nil
}

// List returns the public feed, newest first. Limit defaults to 20 and is
// capped at 100.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.News, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListNews(ctx, limit, offset)
}
