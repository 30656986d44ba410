package api

import (
	"time"

	"crm-api/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int        `json:"id" example:"1"`
	Name      string     `json:"name" example:"Alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// swagger:model api.AuthResponse
type AuthResponse struct {
	Message string       `json:"message" example:"Login successful"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// swagger:model api.ProfileResponse
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Logout successful"`
}

// NewUserResponse 不含密碼雜湊
func NewUserResponse(u *model.User, withCreatedAt bool) UserResponse {
	r := UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
	if withCreatedAt {
		t := u.CreatedAt
		r.CreatedAt = &t
	}
	return r
}
