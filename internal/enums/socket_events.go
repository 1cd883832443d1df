package enums

const (
	SOCKET_EVENT_MESSAGE_NEW    = "message:new"
	SOCKET_EVENT_MESSAGE_UPDATE = "message:update"
	SOCKET_EVENT_MESSAGE_DELETE = "message:delete"
	SOCKET_EVENT_CHAT_UPDATE    = "chat:update"
	SOCKET_EVENT_CALL_INVITE    = "call:invite"
)
