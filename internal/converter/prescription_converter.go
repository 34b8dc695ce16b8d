package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:           p.ID,
		Doctor:       p.Doctor,
		Patient:      string(p.Patient),
		MedicineID:   p.MedicineID,
		MedicineName: p.MedicineName,
		Dosage:       p.Dosage,
		TS:           p.TS,
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

func MedicineToResponse(m *entity.Medicine) *dto.MedicineResponse {
	if m == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:           m.ID,
		Drug:         m.Drug,
		Stock:        m.Stock,
		Form:         m.Form,
		Strength:     m.Strength,
		Manufacturer: m.Manufacturer,
	}
}

func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i := range medicines {
		responses[i] = *MedicineToResponse(&medicines[i])
	}
	return responses
}

func RestockRequestsToResponses(requests []entity.RestockRequest) []dto.RestockRequestResponse {
	responses := make([]dto.RestockRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = dto.RestockRequestResponse{
			ID:           r.ID,
			MedicineID:   r.MedicineID,
			MedicineName: r.MedicineName,
			RequestedBy:  r.RequestedBy,
			Reason:       r.Reason,
			TS:           r.TS,
		}
	}
	return responses
}
