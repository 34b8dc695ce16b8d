package dto

import "time"

// Request DTOs

type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=admin doctor patient"`
}

type UpdateAccountRequest struct {
	Password string `json:"password" validate:"omitempty,min=4"`
	Role     string `json:"role" validate:"omitempty,oneof=admin doctor patient"`
}

// Response DTOs

type AccountResponse struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}
