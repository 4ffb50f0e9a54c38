// File: internal/profile/service_test.go
package profile

import (
	"context"
	"testing"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, profile *Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, profile *Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ Repository = (*MockRepository)(nil)

func TestGetOrCreate_ReturnsExistingProfile(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	identity := &shared.Identity{UserID: uuid.New(), Role: shared.RoleUser}
	existing := &Profile{}
	existing.ID = identity.UserID

	repo.On("FindByID", mock.Anything, identity.UserID).Return(existing, nil)

	p, err := svc.GetOrCreate(context.Background(), identity)
	assert.NoError(t, err)
	assert.Equal(t, existing, p)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreate_LazilyCreatesOnFirstTouch(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	identity := &shared.Identity{UserID: uuid.New(), Email: "Buyer@Example.com", Role: shared.RoleUser}

	repo.On("FindByID", mock.Anything, identity.UserID).Return(nil, common.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Profile) bool {
		return p.ID == identity.UserID && p.Email != nil && *p.Email == identity.Email && p.Role == shared.RoleUser
	})).Return(nil)

	p, err := svc.GetOrCreate(context.Background(), identity)
	assert.NoError(t, err)
	assert.Equal(t, identity.UserID, p.ID)
	repo.AssertExpectations(t)
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	id := uuid.New()
	phone := "+971501234567"
	current := &Profile{FullName: strPtr("Amina K"), Phone: strPtr("old")}
	current.ID = id

	repo.On("FindByID", mock.Anything, id).Return(current, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *Profile) bool {
		return *p.Phone == phone && *p.FullName == "Amina K"
	})).Return(nil)

	p, err := svc.Update(context.Background(), id, UpdateProfileRequest{Phone: &phone})
	assert.NoError(t, err)
	assert.Equal(t, phone, *p.Phone)
	repo.AssertExpectations(t)
}

func TestPromoteToAdmin_UnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, common.ErrNotFound)

	_, err := svc.PromoteToAdmin(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestPromoteToAdmin_AlreadyAdminIsNoop(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	admin := &Profile{Role: shared.RoleAdmin}
	admin.ID = uuid.New()
	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

	p, err := svc.PromoteToAdmin(context.Background(), "admin@example.com")
	assert.NoError(t, err)
	assert.Equal(t, shared.RoleAdmin, p.Role)
	repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func strPtr(s string) *string { return &s }
