package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.CustomValidator
}

func NewContactHandler(contactUsecase usecase.ContactUsecase, validator *validator.CustomValidator) *ContactHandler {
	return &ContactHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactMessageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	message, err := h.contactUsecase.Submit(r.Context(), &req)
	if err != nil {
		storeFailure(w, err, "Failed to send message")
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactUsecase.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		storeFailure(w, err, "Failed to get messages")
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.contactUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrContactMessageNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		storeFailure(w, err, "Failed to delete message")
		return
	}

	response.Success(w, http.StatusOK, "Message deleted successfully", nil)
}
