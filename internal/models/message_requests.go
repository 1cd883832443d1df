package models

type SendMessageRequest struct {
	ChatType string `form:"chat_type" validate:"required,oneof=private group"`
	Target   string `form:"target" validate:"required"`
	Text     string `form:"text"`
}

type MessageEditRequest struct {
	Text string `json:"text"`
}

type CallInviteRequest struct {
	TargetLogin string `json:"target_login" validate:"required,max=128"`
}

type MessageForwardRequest struct {
	ChatType string `json:"chat_type" validate:"required,oneof=private group"`
	Target   string `json:"target" validate:"required"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Mime string `json:"mime"`
}
