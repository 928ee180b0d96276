// Package profile contains reading and editing the user's own account,
// including the company logo upload.
package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Repository is the storage contract for profiles.
type Repository interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, userUID string, req models.DummyProfile) (int, error)
	UpdateLogoURL(ctx context.Context, userUID, logoURL string) error
}

// BlobStore keeps uploaded logo images.
type BlobStore interface {
	Upload(r io.Reader, filename string) (string, error)
	Download(fileID string) ([]byte, error)
}

// Cache is the read-through cache contract.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service implements profile operations.
type Service struct {
	repo  Repository
	blobs BlobStore
	cache Cache
	log   *slog.Logger
}

// New creates a profile Service.
func New(repo Repository, blobs BlobStore, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		cache: cache,
		log:   log,
	}
}

// Read returns the user's own profile. The row is cached briefly; the
// password hash never leaves the model's JSON form.
func (s *Service) Read(ctx context.Context, userUID string) (*models.User, error) {
	var user *models.User
	cacheKey := fmt.Sprintf("profile:%s", userUID)
	found, err := s.cache.Get(cacheKey, &user)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if found {
		return user, nil
	}

	user, err = s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, user, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
	}
	return user, nil
}

// Update overwrites the editable profile fields. The role stays as fixed
// at registration. Returns the number of updated rows.
func (s *Service) Update(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
	count, err := s.repo.UpdateProfile(ctx, userUID, req)
	if err != nil {
		return 0, err
	}
	s.invalidate(userUID)
	return count, nil
}

// UploadLogo stores the image and saves its public URL on the profile.
func (s *Service) UploadLogo(ctx context.Context, userUID, filename string, r io.Reader) (string, error) {
	fileID, err := s.blobs.Upload(r, filename)
	if err != nil {
		return "", err
	}
	logoURL := "/logos/" + fileID
	if err := s.repo.UpdateLogoURL(ctx, userUID, logoURL); err != nil {
		return "", err
	}
	s.invalidate(userUID)
	return logoURL, nil
}

// DownloadLogo reads back a stored logo by its file id.
func (s *Service) DownloadLogo(_ context.Context, fileID string) ([]byte, error) {
	return s.blobs.Download(fileID)
}

func (s *Service) invalidate(userUID string) {
	cacheKey := fmt.Sprintf("profile:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
