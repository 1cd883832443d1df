package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatGroup struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	AvatarURL string        `gorm:"size:500;default:''" json:"avatar_url"`
	OwnerID   uuid.UUID     `gorm:"type:uuid;not null" json:"owner_id"`
	Owner     User          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Members   []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

func (group *ChatGroup) BeforeCreate(tx *gorm.DB) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	return nil
}
