package dto

import "time"

type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Message string `json:"message" validate:"required,min=1"`
}

type ContactMessageResponse struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Message string    `json:"message"`
	TS      time.Time `json:"ts"`
}

type ContactMessageListResponse struct {
	Messages []ContactMessageResponse `json:"messages"`
	Total    int                      `json:"total"`
}
