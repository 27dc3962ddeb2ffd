package dto

import "github.com/spec-kit/meals-service/internal/domain"

// SignupRequest payload for new accounts.
type SignupRequest struct {
	UserName    string              `json:"userName" validate:"required,min=3,max=64"`
	Password    string              `json:"password" validate:"required,min=6"`
	Role        string              `json:"role" validate:"required,oneof=client chef"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest carries optional profile changes; nil fields are
// untouched.
type ProfileUpdateRequest struct {
	Bio                *string             `json:"bio,omitempty"`
	Coordinates        *domain.Coordinates `json:"coordinates,omitempty"`
	ProfilePicturePath *string             `json:"profilePicturePath,omitempty"`
}
