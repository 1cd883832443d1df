package models

type LoginRequestBody struct {
	Login    string `json:"login" validate:"required,max=128"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        *ProfileResponse `json:"user"`
}
