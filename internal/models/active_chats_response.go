package models

import "time"

type ActiveChat struct {
	ChatType  string     `json:"chat_type"`
	Target    string     `json:"target"`
	Name      string     `json:"name"`
	AvatarURL string     `json:"avatar_url"`
	Preview   string     `json:"preview"`
	Unread    int64      `json:"unread"`
	IsOnline  bool       `json:"is_online"`
	LastAt    *time.Time `json:"last_at"`
}

type ActiveChatsResponse struct {
	Chats []ActiveChat `json:"chats"`
}
