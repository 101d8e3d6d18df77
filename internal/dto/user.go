package dto

import (
	"time"

	"github.com/examhub/examhub/internal/model"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name" binding:"required,min=3"`
	LastName        string `json:"last_name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,min=11,max=14"`
	Password        string `json:"password" binding:"required,min=7"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=7"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,min=3"`
	LastName  string `json:"last_name" binding:"omitempty,min=3"`
}

// UserResponse is the public projection of a user. The password hash and the
// secret codes never leave the service layer.
type UserResponse struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	IsActivated bool      `json:"is_activated"`
	Avatar      *string   `json:"avatar"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToUserResponse maps a user model to its public projection
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		IsActivated: user.IsActivated,
		Avatar:      user.Avatar,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserResponses maps a slice of user models
func ToUserResponses(users []model.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
