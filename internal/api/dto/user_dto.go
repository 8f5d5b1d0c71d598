package dto

import (
	"time"

	"github.com/fixware/repairdesk/internal/domain"
)

// RegisterRequest payload for new customers.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for customer and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfilePatchRequest carries the patchable profile fields. Absent fields
// are left untouched.
type ProfilePatchRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
}

// ToPatch converts the payload into the domain patch.
func (r ProfilePatchRequest) ToPatch() domain.UserProfilePatch {
	return domain.UserProfilePatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
	}
}

// ProfileResponse is the customer profile view.
type ProfileResponse struct {
	UID       string     `json:"uid"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	ZipCode   string     `json:"zip_code,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewProfileResponse maps the domain record.
func NewProfileResponse(profile domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		UID:       profile.UID,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Street:    profile.Address.Street,
		City:      profile.Address.City,
		State:     profile.Address.State,
		ZipCode:   profile.Address.ZipCode,
		CreatedAt: timePtr(profile.CreatedAt),
		UpdatedAt: timePtr(profile.UpdatedAt),
	}
}

// NewProfileList maps a slice of domain records.
func NewProfileList(profiles []domain.UserProfile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, NewProfileResponse(profile))
	}
	return out
}
