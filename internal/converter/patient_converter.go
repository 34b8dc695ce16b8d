package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:         p.ID,
		Identifier: string(p.Identifier()),
		Name:       p.Name,
		NHS:        p.NHS,
		Email:      p.Email,
		DOB:        p.DOB,
		Gender:     p.Gender,
		Phone:      p.Phone,
		Address:    p.Address,
		CanSignIn:  p.HasPassword(),
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
