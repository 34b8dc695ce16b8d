package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"
)

type MedicineHandler struct {
	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

// ListMedicines accepts ?search= and ?stock=low|out
func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	medicines, err := h.medicineUsecase.List(r.Context(), query.Get("search"), query.Get("stock"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStockLevel):
			response.BadRequest(w, err.Error())
		default:
			storeFailure(w, err, "Failed to get medicines")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicines retrieved successfully", medicines)
}

func (h *MedicineHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid medicine ID")
		return
	}

	var req dto.SetStockRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.SetStock(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMedicineNotFound):
			response.NotFound(w, "Medicine not found")
		default:
			storeFailure(w, err, "Failed to update stock")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stock updated successfully", medicine)
}

func (h *MedicineHandler) RequestRestock(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid medicine ID")
		return
	}

	var req dto.RestockRequestRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.medicineUsecase.RequestRestock(r.Context(), session, id, &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrMedicineNotFound):
			response.NotFound(w, "Medicine not found")
		default:
			storeFailure(w, err, "Failed to request restock")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Restock requested successfully", nil)
}

func (h *MedicineHandler) ListRestockRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.medicineUsecase.ListRestockRequests(r.Context())
	if err != nil {
		storeFailure(w, err, "Failed to get restock requests")
		return
	}

	response.Success(w, http.StatusOK, "Restock requests retrieved successfully", requests)
}
