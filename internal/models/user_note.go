package models

import (
	"time"

	"github.com/google/uuid"
)

// UserNote is a private note one user keeps about another.
type UserNote struct {
	OwnerUserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TargetUserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Note         string    `gorm:"type:text;not null"`
	UpdatedAt    time.Time
}
