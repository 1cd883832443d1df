package enums

const (
	FILE_BUCKET_MESSAGE_ATTACHMENTS = "message-attachments"
)
