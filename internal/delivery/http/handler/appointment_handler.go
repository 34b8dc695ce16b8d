package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const eventKeepAlive = 25 * time.Second

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	log                *logrus.Logger
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		log:                log,
	}
}

func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["id"]
	date := r.URL.Query().Get("date")

	slots, err := h.appointmentUsecase.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, "date must use the YYYY-MM-DD format")
		default:
			storeFailure(w, err, "Failed to compute available slots")
		}
		return
	}

	message := "Available slots retrieved successfully"
	if len(slots.Available) == 0 {
		message = "No slots available for this date"
	}
	response.Success(w, http.StatusOK, message, slots)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	booking, err := h.appointmentUsecase.Book(r.Context(), session, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotConflict):
			response.Conflict(w, "This slot has just been booked, please pick another")
		case errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidSlot):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrNotPatientSession):
			response.Forbidden(w, err.Error())
		default:
			storeFailure(w, err, "Failed to book appointment")
		}
		return
	}

	message := "Appointment booked successfully"
	if booking.Fallback {
		message = "Appointment saved to the fallback list"
	}
	response.Success(w, http.StatusCreated, message, booking)
}

func (h *AppointmentHandler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotPatientSession):
			response.Forbidden(w, err.Error())
		default:
			storeFailure(w, err, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "No doctor profile matches this account")
		default:
			storeFailure(w, err, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.Export(r.Context())
	if err != nil {
		storeFailure(w, err, "Failed to export appointments")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="appointments.json"`)
	response.Success(w, http.StatusOK, "Appointments exported successfully", appointments)
}

// Events streams appointment notifications as server-sent events until the
// client goes away.
func (h *AppointmentHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	notifications, err := h.appointmentUsecase.Subscribe(r.Context())
	if err != nil {
		h.log.Warnf("Failed to subscribe to appointment notifications: %+v", err)
		response.ServiceUnavailable(w, "Notifications are unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(eventKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case n, ok := <-notifications:
			if !ok {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				h.log.Warnf("Failed to encode notification: %+v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Type, payload)
			flusher.Flush()
		}
	}
}
