package models

import "github.com/google/uuid"

// GroupMember maps users to groups, one row per (group, user).
type GroupMember struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_group_member" json:"group_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_group_member" json:"user_id"`
	User    User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
