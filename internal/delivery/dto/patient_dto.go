package dto

// Request DTOs

type CreatePatientRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	NHS      string `json:"nhs" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"omitempty,max=20"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Address  string `json:"address" validate:"omitempty"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type UpdatePatientRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2"`
	NHS      string `json:"nhs" validate:"omitempty,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender   string `json:"gender" validate:"omitempty,max=20"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Address  string `json:"address" validate:"omitempty"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// Response DTOs

type PatientResponse struct {
	ID         uint   `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	NHS        string `json:"nhs,omitempty"`
	Email      string `json:"email,omitempty"`
	DOB        string `json:"dob,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	CanSignIn  bool   `json:"can_sign_in"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
