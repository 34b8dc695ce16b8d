package dto

// Request DTOs

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	NHS            string `json:"nhs" validate:"omitempty,max=50"`
	Email          string `json:"email" validate:"omitempty,email"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
	Address        string `json:"address" validate:"omitempty"`
	Notes          string `json:"notes" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2"`
	NHS            string `json:"nhs" validate:"omitempty,max=50"`
	Email          string `json:"email" validate:"omitempty,email"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=50"`
	Address        string `json:"address" validate:"omitempty"`
	Notes          string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NHS            string `json:"nhs,omitempty"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
