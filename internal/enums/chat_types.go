package enums

const (
	CHAT_TYPE_PRIVATE = "private"
	CHAT_TYPE_GROUP   = "group"
)

const (
	USER_ROLE_USER  = "User"
	USER_ROLE_ADMIN = "Admin"
)

const (
	PREVIEW_FILE    = "File"
	PREVIEW_MESSAGE = "Message"
	PREVIEW_YOU     = "You"
)
