package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/infrastructure/broadcast"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAppointmentUsecase struct {
	usecase.AppointmentUsecase

	BookFunc           func(ctx context.Context, session entity.Session, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error)
	AvailableSlotsFunc func(ctx context.Context, doctorID, date string) (*dto.SlotAvailabilityResponse, error)
	SubscribeFunc      func(ctx context.Context) (<-chan broadcast.Notification, error)
}

func (m *mockAppointmentUsecase) Book(ctx context.Context, session entity.Session, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
	return m.BookFunc(ctx, session, req)
}

func (m *mockAppointmentUsecase) AvailableSlots(ctx context.Context, doctorID, date string) (*dto.SlotAvailabilityResponse, error) {
	return m.AvailableSlotsFunc(ctx, doctorID, date)
}

func (m *mockAppointmentUsecase) Subscribe(ctx context.Context) (<-chan broadcast.Notification, error) {
	return m.SubscribeFunc(ctx)
}

func newAppointmentTestHandler(uc usecase.AppointmentUsecase) *AppointmentHandler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAppointmentHandler(uc, validator.NewValidator(), log)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAppointmentHandlerBook(t *testing.T) {
	patient := entity.Session{Profile: "ada@example.org", Role: entity.RolePatient}

	tests := []struct {
		name       string
		body       string
		session    *entity.Session
		bookErr    error
		fallback   bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "booked",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			session:    &patient,
			wantStatus: http.StatusCreated,
			wantMsg:    "Appointment booked successfully",
		},
		{
			name:       "fallback commit",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			session:    &patient,
			fallback:   true,
			wantStatus: http.StatusCreated,
			wantMsg:    "Appointment saved to the fallback list",
		},
		{
			name:       "slot taken",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			session:    &patient,
			bookErr:    usecase.ErrSlotConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown doctor",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			session:    &patient,
			bookErr:    usecase.ErrDoctorNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store unavailable",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			session:    &patient,
			bookErr:    store.ErrStorageUnavailable,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "validation",
			body:       `{"doctor_id": "3", "date": "02/03/2026", "time": "10:00"}`,
			session:    &patient,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Validation failed",
		},
		{
			name:       "malformed body",
			body:       `{`,
			session:    &patient,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no session",
			body:       `{"doctor_id": "3", "date": "2026-03-02", "time": "10:00"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAppointmentUsecase{
				BookFunc: func(ctx context.Context, session entity.Session, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
					assert.Equal(t, "ada@example.org", session.Profile)
					if tt.bookErr != nil {
						return nil, tt.bookErr
					}
					return &dto.BookingResponse{
						Appointment: dto.AppointmentResponse{ID: 1, Doctor: req.DoctorID, Date: req.Date, Time: req.Time},
						Fallback:    tt.fallback,
					}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(tt.body))
			if tt.session != nil {
				req = req.WithContext(middleware.WithSession(req.Context(), *tt.session))
			}
			rec := httptest.NewRecorder()

			newAppointmentTestHandler(uc).Book(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeResponse(t, rec).Message)
			}
		})
	}
}

func TestAppointmentHandlerAvailableSlots(t *testing.T) {
	uc := &mockAppointmentUsecase{
		AvailableSlotsFunc: func(ctx context.Context, doctorID, date string) (*dto.SlotAvailabilityResponse, error) {
			if date == "bad" {
				return nil, usecase.ErrInvalidDate
			}
			return &dto.SlotAvailabilityResponse{Doctor: doctorID, Date: date, Available: []string{}}, nil
		},
	}
	h := newAppointmentTestHandler(uc)

	router := mux.NewRouter()
	router.HandleFunc("/doctors/{id}/slots", h.AvailableSlots)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/3/slots?date=2026-03-02", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No slots available for this date", decodeResponse(t, rec).Message)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/3/slots?date=bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppointmentHandlerEvents(t *testing.T) {
	notifications := make(chan broadcast.Notification, 1)
	notifications <- broadcast.Notification{
		Type:        broadcast.TypeAppointmentCreated,
		Appointment: entity.Appointment{ID: 42, Doctor: "3", Date: "2026-03-02", Time: "10:00"},
	}
	close(notifications)

	uc := &mockAppointmentUsecase{
		SubscribeFunc: func(ctx context.Context) (<-chan broadcast.Notification, error) {
			return notifications, nil
		},
	}

	rec := httptest.NewRecorder()
	newAppointmentTestHandler(uc).Events(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/events", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: "+broadcast.TypeAppointmentCreated+"\n")
	assert.Contains(t, body, `"id":42`)
}
