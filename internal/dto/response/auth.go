package response

import (
	"time"

	"crime-report/internal/data/entity"
)

type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          *string   `json:"name"`
	AadhaarNumber *string   `json:"aadhaar_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoginResponse struct {
	Message string  `json:"message"`
	UserID  uint    `json:"user_id"`
	Name    *string `json:"name"`
	Email   string  `json:"email"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AadhaarNumber: user.AadhaarNumber,
		IsActive:      true,
		CreatedAt:     user.CreatedAt,
	}
}
