package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is addressed either to a user (ReceiverUserID) or to a group (GroupID).
type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	SenderID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender         User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReceiverUserID *uuid.UUID `gorm:"type:uuid;index" json:"receiver_user_id"`
	GroupID        *uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	Text           string     `gorm:"type:text;default:''" json:"text"`
	FileURL        string     `gorm:"size:500;default:''" json:"file_url"`
	FileMime       string     `gorm:"size:150;default:''" json:"file_mime"`
	IsRead         bool       `gorm:"default:false" json:"is_read"`

	ForwardedFromLogin string `gorm:"size:128;default:''" json:"forwarded_from_login"`
	ForwardedFromName  string `gorm:"size:255;default:''" json:"forwarded_from_name"`
}

func (message *Message) BeforeCreate(tx *gorm.DB) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return nil
}

func (message *Message) IsGroup() bool {
	return message.GroupID != nil
}

// ChatTarget is the group id for group messages and the receiver id otherwise.
func (message *Message) ChatTarget() string {
	if message.GroupID != nil {
		return message.GroupID.String()
	}
	if message.ReceiverUserID != nil {
		return message.ReceiverUserID.String()
	}
	return ""
}

type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	SenderLogin string    `json:"sender_login"`
	SenderName  string    `json:"sender_name"`
	Text        string    `json:"text"`
	FileURL     string    `json:"file_url"`
	FileMime    string    `json:"file_mime"`
	IsRead      bool      `json:"is_read"`
	IsMine      bool      `json:"is_mine"`

	ForwardedFromLogin string `json:"forwarded_from_login"`
	ForwardedFromName  string `json:"forwarded_from_name"`
}

// ToMessageResponse expects Sender to be preloaded.
func (message *Message) ToMessageResponse(readerID uuid.UUID) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		CreatedAt:   message.CreatedAt,
		SenderLogin: message.Sender.Login,
		SenderName:  message.Sender.DisplayName(),
		Text:        message.Text,
		FileURL:     message.FileURL,
		FileMime:    message.FileMime,
		IsRead:      message.IsRead,
		IsMine:      message.SenderID == readerID,

		ForwardedFromLogin: message.ForwardedFromLogin,
		ForwardedFromName:  message.ForwardedFromName,
	}
}
