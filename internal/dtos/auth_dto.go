package dtos

import "github.com/justsurfingit/habte-job-portal/internal/models"

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=jobseeker employer"`
	Company  string      `json:"company" binding:"required_if=Role employer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdateRequest struct {
	Name             string            `json:"name"`
	Phone            string            `json:"phone"`
	Location         string            `json:"location"`
	Bio              string            `json:"bio"`
	Skills           models.StringList `json:"skills"`
	TelebirrAccount  string            `json:"telebirrAccount"`
	TelegramUsername string            `json:"telegramUsername"`
}

type ProfileImageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}
