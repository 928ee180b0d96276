// Package listing contains the business logic of the classifieds feed:
// CRUD for listings, the filter/sort composition, and the like toggle.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/sl"
	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// Repository is the storage contract for listings and likes.
type Repository interface {
	CreateListing(ctx context.Context, l models.Listing) (string, error)
	ReadListing(ctx context.Context, id string) (*models.Listing, error)
	UpdateListing(ctx context.Context, l models.Listing, id, ownerUID string) (int, error)
	RemoveListing(ctx context.Context, id, ownerUID string) (int, error)
	ListListings(ctx context.Context, f models.ListingFilter) ([]*models.Listing, error)
	ListListingsByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error)
	ToggleLike(ctx context.Context, userUID, listingID string) (*models.LikeResult, error)
	IsLiked(ctx context.Context, userUID, listingID string) (bool, error)
	ListLikedListingIDs(ctx context.Context, userUID string) ([]string, error)
}

// Cache is the read-through cache contract.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Notifier delivers a notification to a user; implemented by the
// notification service.
type Notifier interface {
	Notify(ctx context.Context, userUID, kind, title, content, link string) error
}

// Service implements listing operations with caching and like
// notifications.
type Service struct {
	repo     Repository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// New creates a listing Service.
func New(repo Repository, cache Cache, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Create inserts a new active listing for the owner. Only business
// accounts reach this method (enforced by middleware) and the category
// must belong to the closed set.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.DummyListing) (string, error) {
	if !models.IsListingCategory(req.Category) {
		return "", fmt.Errorf("unknown category: %s", req.Category)
	}
	l := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Price:       req.Price,
		UserUID:     ownerUID,
		Status:      models.ListingStatusActive,
	}
	id, err := s.repo.CreateListing(ctx, l)
	if err != nil {
		return "", err
	}
	s.log.Info("created new listing", slog.String("id", id))
	return id, nil
}

// Read returns one listing with its owner's public fields and, when
// viewerUID is non-empty, the viewer's like state. The listing body is
// cached; the like flag is per-viewer and never cached.
func (s *Service) Read(ctx context.Context, id, viewerUID string) (*models.Listing, error) {
	var result *models.Listing
	cacheKey := fmt.Sprintf("listing:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found {
		result, err = s.repo.ReadListing(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache listing", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	if viewerUID != "" {
		liked, err := s.repo.IsLiked(ctx, viewerUID, id)
		if err != nil {
			return nil, err
		}
		result.IsLiked = liked
	}
	return result, nil
}

// List returns the active listings matching the filter. When viewerUID is
// non-empty each returned listing carries the viewer's like state.
func (s *Service) List(ctx context.Context, f models.ListingFilter, viewerUID string) ([]*models.Listing, error) {
	listings, err := s.repo.ListListings(ctx, f)
	if err != nil {
		return nil, err
	}
	if viewerUID == "" || len(listings) == 0 {
		return listings, nil
	}

	likedIDs, err := s.repo.ListLikedListingIDs(ctx, viewerUID)
	if err != nil {
		return nil, err
	}
	liked := make(map[string]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for _, l := range listings {
		_, l.IsLiked = liked[l.ID]
	}
	return listings, nil
}

// ListByOwner returns all listings of one owner for the dashboard.
func (s *Service) ListByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error) {
	return s.repo.ListListingsByOwner(ctx, ownerUID)
}

// Update overwrites a listing owned by ownerUID and invalidates its cache
// entry. Returns the number of updated rows (zero when not the owner).
func (s *Service) Update(ctx context.Context, id, ownerUID string, req models.DummyListing) (int, error) {
	if !models.IsListingCategory(req.Category) {
		return 0, fmt.Errorf("unknown category: %s", req.Category)
	}
	l := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Price:       req.Price,
		Status:      models.ListingStatusActive,
	}
	count, err := s.repo.UpdateListing(ctx, l, id, ownerUID)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("listing:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return count, nil
}

// Remove deletes a listing owned by ownerUID and invalidates its cache
// entry. Returns the number of deleted rows.
func (s *Service) Remove(ctx context.Context, id, ownerUID string) (int, error) {
	cacheKey := fmt.Sprintf("listing:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return s.repo.RemoveListing(ctx, id, ownerUID)
}

// ToggleLike flips the like state of (userUID, listingID) atomically and
// returns the server truth. A fresh like on someone else's listing
// notifies the owner; a notification failure never fails the toggle.
func (s *Service) ToggleLike(ctx context.Context, userUID, listingID string) (*models.LikeResult, error) {
	listing, err := s.repo.ReadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.ToggleLike(ctx, userUID, listingID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("listing:%s", listingID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}

	if result.Liked && listing.UserUID != userUID {
		if err := s.notifier.Notify(ctx, listing.UserUID,
			models.NotificationLike,
			"Nowe polubienie",
			fmt.Sprintf("Twoje ogłoszenie %q zostało polubione", listing.Title),
			"/listings/"+listingID); err != nil {
			s.log.Warn("failed to notify listing owner", sl.Err(err))
		}
	}
	return result, nil
}
