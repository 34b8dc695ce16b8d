package dto

// Request DTOs

// LoginRequest identifies by username, patient email or NHS number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"omitempty,max=20"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	NHS      string `json:"nhs" validate:"omitempty,max=50"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"omitempty,max=20"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Address  string `json:"address" validate:"omitempty"`
	Password string `json:"password" validate:"required,min=6"`
}

// Response DTOs

type SessionResponse struct {
	Profile string `json:"profile"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	TokenID string `json:"token_id,omitempty"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	Session     SessionResponse `json:"session"`
}
