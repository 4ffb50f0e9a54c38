// File: internal/listing/handler_test.go
package listing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/middleware"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"context"
)

// --- Mock Service ---

type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, query SearchQuery, identity *shared.Identity) ([]CardResponse, *common.Pagination, error) {
	args := m.Called(ctx, query, identity)
	var cards []CardResponse
	if args.Get(0) != nil {
		cards = args.Get(0).([]CardResponse)
	}
	var p *common.Pagination
	if args.Get(1) != nil {
		p = args.Get(1).(*common.Pagination)
	}
	return cards, p, args.Error(2)
}

func (m *MockService) MapView(ctx context.Context, query SearchQuery) (MapResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(MapResponse), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id uuid.UUID, identity *shared.Identity) (*DetailResponse, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DetailResponse), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, identity *shared.Identity, req CreateListingRequest) (*Listing, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, identity *shared.Identity, id uuid.UUID, req UpdateListingRequest) (*Listing, error) {
	args := m.Called(ctx, identity, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, identity *shared.Identity, id uuid.UUID) (*DeleteResult, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeleteResult), args.Error(1)
}

func (m *MockService) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]CardResponse, *common.Pagination, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	var cards []CardResponse
	if args.Get(0) != nil {
		cards = args.Get(0).([]CardResponse)
	}
	var p *common.Pagination
	if args.Get(1) != nil {
		p = args.Get(1).(*common.Pagination)
	}
	return cards, p, args.Error(2)
}

func (m *MockService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ Service = (*MockService)(nil)

// --- Test helpers ---

func setupRouter(t *testing.T, svc Service, identity *shared.Identity) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()

	setIdentity := func(c *gin.Context) {
		if identity != nil {
			c.Set(middleware.IdentityKey, identity)
		}
		c.Next()
	}
	authMW := gin.HandlerFunc(setIdentity)
	optionalAuthMW := gin.HandlerFunc(setIdentity)

	handler := NewHandler(svc, zap.NewNop(), testConfig())
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, authMW, optionalAuthMW)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestSearchListings_MalformedNumericFilterRejected(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(t, svc, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/listings?min_price=cheap", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchListings_NormalizesPagination(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, mock.MatchedBy(func(q SearchQuery) bool {
		return q.Page == 1 && q.PageSize == common.MaxPageSize
	}), mock.Anything).Return([]CardResponse{}, common.NewPagination(0, 1, common.MaxPageSize), nil)

	router := setupRouter(t, svc, nil)
	w := performRequest(router, http.MethodGet, "/api/v1/listings?page=0&page_size=9999", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetListingByID_InvalidUUID(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(t, svc, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/listings/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateListing_MissingImagesRejectedAtBinding(t *testing.T) {
	svc := new(MockService)
	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleUser}
	router := setupRouter(t, svc, identity)

	body := map[string]interface{}{
		"title":         "Bright 2BR near the marina",
		"description":   "Spacious and well lit.",
		"purpose":       "rent",
		"property_type": "apartment",
		"price":         95000,
		"city":          "Dubai",
	}
	w := performRequest(router, http.MethodPost, "/api/v1/listings", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateListing_MissingCoordinatesRejectedAtBinding(t *testing.T) {
	svc := new(MockService)
	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleUser}
	router := setupRouter(t, svc, identity)

	body := map[string]interface{}{
		"title":         "Bright 2BR near the marina",
		"description":   "Spacious and well lit, close to transport.",
		"purpose":       "rent",
		"property_type": "apartment",
		"price":         95000,
		"city":          "Dubai",
		"image_urls":    []string{"https://cdn.example.com/listing-images/one.jpg"},
	}
	w := performRequest(router, http.MethodPost, "/api/v1/listings", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteListing_ReportsFileWarnings(t *testing.T) {
	svc := new(MockService)
	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleUser}
	listingID := uuid.New()

	svc.On("Delete", mock.Anything, identity, listingID).Return(&DeleteResult{
		ImagesDeleted:    2,
		FavoritesDeleted: 1,
		FileWarnings:     []string{"could not remove a.jpg"},
	}, nil)

	router := setupRouter(t, svc, identity)
	w := performRequest(router, http.MethodDelete, "/api/v1/listings/"+listingID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp common.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "could not be removed")
	svc.AssertExpectations(t)
}

func TestGetMyListings_AnonymousUnauthorized(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(t, svc, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/listings/mine", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
