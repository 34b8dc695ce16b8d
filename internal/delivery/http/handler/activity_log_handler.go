package handler

import (
	"net/http"
	"strconv"

	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
)

type ActivityLogHandler struct {
	activityUsecase usecase.ActivityLogUsecase
}

func NewActivityLogHandler(activityUsecase usecase.ActivityLogUsecase) *ActivityLogHandler {
	return &ActivityLogHandler{activityUsecase: activityUsecase}
}

// GetActivityLogs returns the newest entries first, ?limit= caps the count
func (h *ActivityLogHandler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.activityUsecase.List(r.Context(), limit)
	if err != nil {
		storeFailure(w, err, "Failed to get activity logs")
		return
	}

	response.Success(w, http.StatusOK, "Activity logs retrieved successfully", logs)
}
