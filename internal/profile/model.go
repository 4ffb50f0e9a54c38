// File: internal/profile/model.go
package profile

import (
	"time"

	"github.com/aqkal/Rentixe/internal/common"

	"github.com/google/uuid"
)

// Profile represents an account profile in the database. Identity itself
// lives with the token issuer; this row carries the marketplace-facing data.
type Profile struct {
	common.BaseModel
	Email     *string `gorm:"type:varchar(255);uniqueIndex"`
	FullName  *string `gorm:"type:varchar(150)"`
	Phone     *string `gorm:"type:varchar(50)"`
	AvatarURL *string `gorm:"type:text"`
	Role      string  `gorm:"type:varchar(50);not null;default:'user'"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// UpdateProfileRequest defines the structure for updating the caller's profile.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty" binding:"omitempty,max=150"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

// ProfileResponse defines the structure for profile data sent in API responses.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     *string   `json:"email,omitempty"`
	FullName  *string   `json:"full_name,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerCard is the public slice of a profile shown next to a listing.
// Contact details are included: publishing a listing publishes them.
type OwnerCard struct {
	ID        uuid.UUID `json:"id"`
	FullName  *string   `json:"full_name,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// ToProfileResponse converts a Profile to its response DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
}

// ToOwnerCard converts a Profile to the owner card embedded in listings.
func ToOwnerCard(p *Profile) *OwnerCard {
	if p == nil {
		return nil
	}
	return &OwnerCard{
		ID:        p.ID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
	}
}
