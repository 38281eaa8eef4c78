package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Name       string  `json:"name" form:"name" binding:"required"`
	Email      string  `json:"email" form:"email" binding:"required,email"`
	Password   string  `json:"password" form:"password" binding:"required,min=6"`
	Role       string  `json:"role" form:"role" binding:"required"`
	StudentID  *string `json:"studentId" form:"studentId"`
	Department *string `json:"department" form:"department"`
	Year       *string `json:"year" form:"year" binding:"omitempty,oneof='1st Year' '2nd Year' '3rd Year' '4th Year'"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	StudentID     *string    `json:"student_id,omitempty"`
	CoordinatorID *string    `json:"coordinator_id,omitempty"`
	Department    *string    `json:"department,omitempty"`
	Year          *string    `json:"year,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

type AuthResponse struct {
	AccessToken string       `json:"token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}
