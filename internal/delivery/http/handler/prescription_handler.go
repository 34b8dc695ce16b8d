package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PrescriptionHandler) Prescribe(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.PrescribeRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Prescribe(r.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOutOfStock):
			response.Conflict(w, "Out of stock, a restock request has been raised")
		case errors.Is(err, usecase.ErrMedicineNotFound):
			response.NotFound(w, "Medicine not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNotDoctorSession):
			response.Forbidden(w, err.Error())
		default:
			storeFailure(w, err, "Failed to prescribe")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription recorded successfully", prescription)
}

func (h *PrescriptionHandler) MyPrescriptions(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListForPatient(r.Context(), session)
	if err != nil {
		storeFailure(w, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) AllPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.ListAll(r.Context())
	if err != nil {
		storeFailure(w, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}
