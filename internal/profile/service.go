// File: internal/profile/service.go
package profile

import (
	"context"

	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for profile business logic.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetOrCreate(ctx context.Context, identity *shared.Identity) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	OwnerCard(ctx context.Context, ownerID uuid.UUID) (*OwnerCard, error)
	PromoteToAdmin(ctx context.Context, email string) (*Profile, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*service)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.FindByID(ctx, id)
}

// GetOrCreate returns the caller's profile, lazily creating the row the
// first time an authenticated user touches the API.
func (s *service) GetOrCreate(ctx context.Context, identity *shared.Identity) (*Profile, error) {
	existing, err := s.repo.FindByID(ctx, identity.UserID)
	if err == nil {
		return existing, nil
	}

	profile := &Profile{Role: shared.RoleUser}
	profile.ID = identity.UserID
	if identity.Email != "" {
		email := identity.Email
		profile.Email = &email
	}
	if createErr := s.repo.Create(ctx, profile); createErr != nil {
		return nil, createErr
	}
	s.logger.Info("Created profile for first-seen user", zap.String("userID", identity.UserID.String()))
	return profile, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// OwnerCard reads the owner's profile regardless of who is asking. The
// lookup runs with repository privileges so anonymous visitors still see
// the contact card on a listing.
func (s *service) OwnerCard(ctx context.Context, ownerID uuid.UUID) (*OwnerCard, error) {
	profile, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToOwnerCard(profile), nil
}

func (s *service) PromoteToAdmin(ctx context.Context, email string) (*Profile, error) {
	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile.Role == shared.RoleAdmin {
		return profile, nil
	}
	if err := s.repo.UpdateRole(ctx, profile.ID, shared.RoleAdmin); err != nil {
		return nil, err
	}
	profile.Role = shared.RoleAdmin
	s.logger.Info("Promoted profile to admin", zap.String("email", email))
	return profile, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
