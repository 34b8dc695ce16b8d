package dto

import "time"

// Request DTOs

type PrescribeRequest struct {
	Patient    string `json:"patient" validate:"required"`
	MedicineID uint   `json:"medicine_id" validate:"required,gt=0"`
	Dosage     string `json:"dosage" validate:"omitempty,max=255"`
}

type SetStockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

type RestockRequestRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID             uint      `json:"id"`
	Doctor         string    `json:"doctor"`
	Patient        string    `json:"patient"`
	MedicineID     uint      `json:"medicine_id"`
	MedicineName   string    `json:"medicine_name"`
	Dosage         string    `json:"dosage,omitempty"`
	RemainingStock int       `json:"remaining_stock"`
	TS             time.Time `json:"ts"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}

type MedicineResponse struct {
	ID           uint   `json:"id"`
	Drug         string `json:"drug"`
	Stock        int    `json:"stock"`
	Form         string `json:"form,omitempty"`
	Strength     string `json:"strength,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int                `json:"total"`
}

type RestockRequestResponse struct {
	ID           uint      `json:"id"`
	MedicineID   uint      `json:"medicine_id"`
	MedicineName string    `json:"medicine_name,omitempty"`
	RequestedBy  string    `json:"requested_by,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	TS           time.Time `json:"ts"`
}

type RestockRequestListResponse struct {
	Requests []RestockRequestResponse `json:"requests"`
	Total    int                      `json:"total"`
}
