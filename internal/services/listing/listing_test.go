package listing_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
	"github.com/magabrotheeeer/city-classifieds/internal/services/listing"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateListing(ctx context.Context, l models.Listing) (string, error) {
	args := m.Called(ctx, l)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ReadListing(ctx context.Context, id string) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *RepoMock) UpdateListing(ctx context.Context, l models.Listing, id, ownerUID string) (int, error) {
	args := m.Called(ctx, l, id, ownerUID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveListing(ctx context.Context, id, ownerUID string) (int, error) {
	args := m.Called(ctx, id, ownerUID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListListings(ctx context.Context, f models.ListingFilter) ([]*models.Listing, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *RepoMock) ListListingsByOwner(ctx context.Context, ownerUID string) ([]*models.Listing, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *RepoMock) ToggleLike(ctx context.Context, userUID, listingID string) (*models.LikeResult, error) {
	args := m.Called(ctx, userUID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LikeResult), args.Error(1)
}

func (m *RepoMock) IsLiked(ctx context.Context, userUID, listingID string) (bool, error) {
	args := m.Called(ctx, userUID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) ListLikedListingIDs(ctx context.Context, userUID string) ([]string, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
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

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	svc := listing.New(new(RepoMock), new(CacheMock), new(NotifierMock), testLogger())

	_, err := svc.Create(context.Background(), "owner", models.DummyListing{
		Title:       "Naprawa rowerów",
		Description: "Szybka naprawa rowerów w centrum",
		Category:    "Samochody",
		Location:    "Rynek 1",
	})

	assert.Error(t, err)
}

func TestToggleLike_NotifiesOwnerOnFreshLike(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	notifier := new(NotifierMock)
	svc := listing.New(repo, cache, notifier, testLogger())

	repo.On("ReadListing", mock.Anything, "listing-1").
		Return(&models.Listing{ID: "listing-1", Title: "Korepetycje", UserUID: "owner-uid"}, nil).Once()
	repo.On("ToggleLike", mock.Anything, "viewer-uid", "listing-1").
		Return(&models.LikeResult{Liked: true, LikesCount: 4}, nil).Once()
	cache.On("Invalidate", "listing:listing-1").Return(nil).Once()
	notifier.On("Notify", mock.Anything, "owner-uid", models.NotificationLike,
		mock.Anything, mock.Anything, "/listings/listing-1").Return(nil).Once()

	result, err := svc.ToggleLike(context.Background(), "viewer-uid", "listing-1")

	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 4, result.LikesCount)
	notifier.AssertExpectations(t)
}

func TestToggleLike_NoNotificationOnUnlike(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	notifier := new(NotifierMock)
	svc := listing.New(repo, cache, notifier, testLogger())

	repo.On("ReadListing", mock.Anything, "listing-1").
		Return(&models.Listing{ID: "listing-1", UserUID: "owner-uid"}, nil).Once()
	repo.On("ToggleLike", mock.Anything, "viewer-uid", "listing-1").
		Return(&models.LikeResult{Liked: false, LikesCount: 3}, nil).Once()
	cache.On("Invalidate", "listing:listing-1").Return(nil).Once()

	result, err := svc.ToggleLike(context.Background(), "viewer-uid", "listing-1")

	assert.NoError(t, err)
	assert.False(t, result.Liked)
	notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_NoNotificationForOwnListing(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	notifier := new(NotifierMock)
	svc := listing.New(repo, cache, notifier, testLogger())

	repo.On("ReadListing", mock.Anything, "listing-1").
		Return(&models.Listing{ID: "listing-1", UserUID: "owner-uid"}, nil).Once()
	repo.On("ToggleLike", mock.Anything, "owner-uid", "listing-1").
		Return(&models.LikeResult{Liked: true, LikesCount: 1}, nil).Once()
	cache.On("Invalidate", "listing:listing-1").Return(nil).Once()

	_, err := svc.ToggleLike(context.Background(), "owner-uid", "listing-1")

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestList_MarksViewerLikes(t *testing.T) {
	repo := new(RepoMock)
	svc := listing.New(repo, new(CacheMock), new(NotifierMock), testLogger())

	listings := []*models.Listing{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	repo.On("ListListings", mock.Anything, mock.Anything).Return(listings, nil).Once()
	repo.On("ListLikedListingIDs", mock.Anything, "viewer-uid").
		Return([]string{"b"}, nil).Once()

	result, err := svc.List(context.Background(), models.ListingFilter{}, "viewer-uid")

	assert.NoError(t, err)
	assert.False(t, result[0].IsLiked)
	assert.True(t, result[1].IsLiked)
	assert.False(t, result[2].IsLiked)
}

func TestList_AnonymousSkipsLikeLookup(t *testing.T) {
	repo := new(RepoMock)
	svc := listing.New(repo, new(CacheMock), new(NotifierMock), testLogger())

	repo.On("ListListings", mock.Anything, mock.Anything).
		Return([]*models.Listing{{ID: "a"}}, nil).Once()

	result, err := svc.List(context.Background(), models.ListingFilter{}, "")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertNotCalled(t, "ListLikedListingIDs", mock.Anything, mock.Anything)
}

func TestRead_CacheMissFallsBackToStorage(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := listing.New(repo, cache, new(NotifierMock), testLogger())

	stored := &models.Listing{ID: "listing-1", Title: "Korepetycje"}
	cache.On("Get", "listing:listing-1", mock.Anything).Return(false, nil).Once()
	repo.On("ReadListing", mock.Anything, "listing-1").Return(stored, nil).Once()
	cache.On("Set", "listing:listing-1", stored, time.Hour).Return(nil).Once()
	repo.On("IsLiked", mock.Anything, "viewer-uid", "listing-1").Return(true, nil).Once()

	result, err := svc.Read(context.Background(), "listing-1", "viewer-uid")

	assert.NoError(t, err)
	assert.Equal(t, "Korepetycje", result.Title)
	assert.True(t, result.IsLiked)
	cache.AssertExpectations(t)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := listing.New(repo, cache, new(NotifierMock), testLogger())

	repo.On("UpdateListing", mock.Anything, mock.Anything, "listing-1", "owner-uid").
		Return(1, nil).Once()
	cache.On("Invalidate", "listing:listing-1").Return(nil).Once()

	count, err := svc.Update(context.Background(), "listing-1", "owner-uid", models.DummyListing{
		Title:       "Nowy tytuł",
		Description: "Zaktualizowany opis ogłoszenia",
		Category:    "Usługi",
		Location:    "Rynek 1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	cache.AssertExpectations(t)
}
