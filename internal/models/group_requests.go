package models

type GroupCreateRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	MemberLogins []string `json:"member_logins" validate:"dive,required,max=128"`
}

type GroupUpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	MemberLogins []string `json:"member_logins" validate:"omitempty,dive,required,max=128"`
}

type GroupResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatar_url"`
	OwnerLogin   string   `json:"owner_login"`
	MemberLogins []string `json:"member_logins"`
}

type GroupOwnerTransferRequest struct {
	NewOwnerLogin string `json:"new_owner_login" validate:"required,max=128"`
}
