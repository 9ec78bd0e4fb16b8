package dto

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}
