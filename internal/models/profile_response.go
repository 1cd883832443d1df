package models

import "github.com/google/uuid"

type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Login      string    `json:"login"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName string    `json:"middle_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	AvatarURL  string    `json:"avatar_url"`
}
