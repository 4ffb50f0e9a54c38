// File: internal/favorite/service_test.go
package favorite

import (
	"context"
	"testing"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock type for favorite.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListingIDsForUser(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Favorite), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListingRepository is a minimal mock for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) CreateWithImages(ctx context.Context, l *listing.Listing, imageURLs []string) error {
	args := m.Called(ctx, l, imageURLs)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*listing.CascadeCounts, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.CascadeCounts), args.Error(1)
}

func (m *MockListingRepository) Search(ctx context.Context, query listing.SearchQuery) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockListingRepository) SearchAllLocated(ctx context.Context, query listing.SearchQuery) ([]listing.Listing, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]listing.Listing), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockListingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *MockRepository, listings *MockListingRepository) Service {
	return NewService(repo, listings, &config.Config{DefaultCurrency: "AED"}, zap.NewNop())
}

func existingListing(id uuid.UUID) *listing.Listing {
	l := &listing.Listing{Title: "Saved listing", City: "Dubai", Price: 60000,
		Purpose: listing.PurposeRent, PropertyType: "apartment"}
	l.ID = id
	return l
}

func TestToggle_AddsWhenAbsent(t *testing.T) {
	repo := new(MockRepository)
	listings := new(MockListingRepository)
	svc := newTestService(repo, listings)

	userID, listingID := uuid.New(), uuid.New()
	listings.On("FindByID", mock.Anything, listingID).Return(existingListing(listingID), nil)
	repo.On("Exists", mock.Anything, userID, listingID).Return(false, nil)
	repo.On("Add", mock.Anything, userID, listingID).Return(nil)

	resp, err := svc.Toggle(context.Background(), userID, listingID)
	require.NoError(t, err)
	assert.True(t, resp.IsFavorited)
	repo.AssertExpectations(t)
}

func TestToggle_RemovesWhenPresent(t *testing.T) {
	repo := new(MockRepository)
	listings := new(MockListingRepository)
	svc := newTestService(repo, listings)

	userID, listingID := uuid.New(), uuid.New()
	listings.On("FindByID", mock.Anything, listingID).Return(existingListing(listingID), nil)
	repo.On("Exists", mock.Anything, userID, listingID).Return(true, nil)
	repo.On("Remove", mock.Anything, userID, listingID).Return(nil)

	resp, err := svc.Toggle(context.Background(), userID, listingID)
	require.NoError(t, err)
	assert.False(t, resp.IsFavorited)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggle_DeletedListingNotFound(t *testing.T) {
	repo := new(MockRepository)
	listings := new(MockListingRepository)
	svc := newTestService(repo, listings)

	userID, listingID := uuid.New(), uuid.New()
	listings.On("FindByID", mock.Anything, listingID).
		Return(nil, common.ErrNotFound.WithDetails("Listing not found."))

	_, err := svc.Toggle(context.Background(), userID, listingID)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestListForUser_SkipsVanishedListings(t *testing.T) {
	repo := new(MockRepository)
	listings := new(MockListingRepository)
	svc := newTestService(repo, listings)

	userID := uuid.New()
	kept := existingListing(uuid.New())
	repo.On("FindByUser", mock.Anything, userID).Return([]Favorite{
		{UserID: userID, ListingID: kept.ID, Listing: kept},
		{UserID: userID, ListingID: uuid.New(), Listing: nil},
	}, nil)

	cards, err := svc.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, kept.ID, cards[0].ID)
	assert.True(t, cards[0].IsFavorited)
}

func TestFavoritedIDs(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockListingRepository))

	userID := uuid.New()
	first, second := uuid.New(), uuid.New()
	repo.On("ListingIDsForUser", mock.Anything, userID, []uuid.UUID{first, second}).
		Return([]uuid.UUID{second}, nil)

	favorited, err := svc.FavoritedIDs(context.Background(), userID, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.False(t, favorited[first])
	assert.True(t, favorited[second])
}

func TestFavoritedIDs_EmptyInputSkipsQuery(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockListingRepository))

	favorited, err := svc.FavoritedIDs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, favorited)
	repo.AssertNotCalled(t, "ListingIDsForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepOrphans(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockListingRepository))

	repo.On("DeleteOrphans", mock.Anything).Return(int64(4), nil)

	removed, err := svc.SweepOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}
