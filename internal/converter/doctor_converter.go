package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(d *entity.Doctor) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             string(d.Identifier()),
		Name:           d.Name,
		NHS:            d.NHS,
		Email:          d.Email,
		Specialization: d.Specialization,
		Phone:          d.Phone,
		Address:        d.Address,
		Notes:          d.Notes,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
