package models

import "mgMessenger/internal/enums"

// MessageEvent is pushed for message:new and message:update.
type MessageEvent struct {
	Type        string `json:"type"`
	ChatType    string `json:"chat_type"`
	Target      string `json:"target"`
	SenderLogin string `json:"sender_login"`
	SenderName  string `json:"sender_name"`
	Preview     string `json:"preview"`
}

type MessageDeleteEvent struct {
	Type     string `json:"type"`
	ChatType string `json:"chat_type"`
	Target   string `json:"target"`
}

// ChatUpdateEvent tells clients to refetch their chat list.
type ChatUpdateEvent struct {
	Type string `json:"type"`
}

type CallInviteEvent struct {
	Type      string `json:"type"`
	FromLogin string `json:"from_login"`
	FromName  string `json:"from_name"`
}

func NewChatUpdateEvent() ChatUpdateEvent {
	return ChatUpdateEvent{Type: enums.SOCKET_EVENT_CHAT_UPDATE}
}
