package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

func ActivityLogsToResponses(logs []entity.ActivityLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = dto.ActivityLogResponse{Timestamp: l.Timestamp, Action: l.Action}
	}
	return responses
}

func ContactMessageToResponse(m *entity.ContactMessage) *dto.ContactMessageResponse {
	if m == nil {
		return nil
	}

	return &dto.ContactMessageResponse{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Message: m.Message,
		TS:      m.TS,
	}
}

func ContactMessagesToResponses(messages []entity.ContactMessage) []dto.ContactMessageResponse {
	responses := make([]dto.ContactMessageResponse, len(messages))
	for i := range messages {
		responses[i] = *ContactMessageToResponse(&messages[i])
	}
	return responses
}
