package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

func AccountToResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}

	return &dto.AccountResponse{
		ID:         a.ID,
		Username:   a.Username,
		Role:       string(a.Role),
		LastActive: a.LastActive,
	}
}

func AccountsToResponses(accounts []entity.Account) []dto.AccountResponse {
	responses := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *AccountToResponse(&accounts[i])
	}
	return responses
}

func SessionToResponse(s entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Profile: s.Profile,
		Role:    string(s.Role),
		Name:    s.Name,
	}
}
