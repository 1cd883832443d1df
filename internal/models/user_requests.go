package models

import "github.com/google/uuid"

type ProfileUpdateRequest struct {
	AvatarURL  string `json:"avatar_url" validate:"max=500"`
	Phone      string `json:"phone" validate:"max=50"`
	Email      string `json:"email" validate:"omitempty,email,max=255"`
	Position   string `json:"position" validate:"max=255"`
	LastName   string `json:"last_name" validate:"max=120"`
	FirstName  string `json:"first_name" validate:"max=120"`
	MiddleName string `json:"middle_name" validate:"max=120"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=4,max=64"`
}

type UserNoteRequest struct {
	Note string `json:"note" validate:"max=2000"`
}

type UserNoteResponse struct {
	Note string `json:"note"`
}

type UserShortResponse struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
}

type UserInfoResponse struct {
	UserShortResponse
	Note string `json:"note"`
}
