package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account; Login is the identity realtime events are addressed to.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Login        string    `gorm:"size:128;uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	AvatarURL    string    `gorm:"size:500;default:''" json:"avatar_url"`
	Phone        string    `gorm:"size:50;default:''" json:"phone"`
	Email        string    `gorm:"size:255;default:''" json:"email"`
	Position     string    `gorm:"size:255;default:''" json:"position"`
	Role         string    `gorm:"size:50;default:'User'" json:"role"`
	LastName     string    `gorm:"size:120;default:''" json:"last_name"`
	FirstName    string    `gorm:"size:120;default:''" json:"first_name"`
	MiddleName   string    `gorm:"size:120;default:''" json:"middle_name"`
	IsBlocked    bool      `gorm:"default:false" json:"is_blocked"`
	IsVisible    bool      `gorm:"default:true" json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return nil
}

// DisplayName joins the name parts that are set, falling back to the login.
func (user *User) DisplayName() string {
	var parts []string
	for _, part := range []string{user.LastName, user.FirstName, user.MiddleName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return user.Login
	}
	return strings.Join(parts, " ")
}

func (user *User) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:         user.ID,
		Login:      user.Login,
		Name:       user.DisplayName(),
		Role:       user.Role,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		MiddleName: user.MiddleName,
		Phone:      user.Phone,
		Email:      user.Email,
		Position:   user.Position,
		AvatarURL:  user.AvatarURL,
	}
}

func (user *User) ToUserShortResponse() UserShortResponse {
	return UserShortResponse{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.DisplayName(),
		AvatarURL: user.AvatarURL,
		Phone:     user.Phone,
		Email:     user.Email,
		Position:  user.Position,
	}
}

// ApplyProfile copies the editable profile fields from request.
func (user *User) ApplyProfile(request *ProfileUpdateRequest) {
	user.AvatarURL = strings.TrimSpace(request.AvatarURL)
	user.Phone = strings.TrimSpace(request.Phone)
	user.Email = strings.TrimSpace(request.Email)
	user.Position = strings.TrimSpace(request.Position)
	user.LastName = strings.TrimSpace(request.LastName)
	user.FirstName = strings.TrimSpace(request.FirstName)
	user.MiddleName = strings.TrimSpace(request.MiddleName)
}
