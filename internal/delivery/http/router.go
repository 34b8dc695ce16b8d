package http

import (
	"context"
	"net/http"

	"hospital-portal/internal/delivery/http/handler"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/pkg/response"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Appointment  *handler.AppointmentHandler
	Prescription *handler.PrescriptionHandler
	Medicine     *handler.MedicineHandler
	Patient      *handler.PatientHandler
	Doctor       *handler.DoctorHandler
	Account      *handler.AccountHandler
	Contact      *handler.ContactHandler
	ActivityLog  *handler.ActivityLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	metrics        http.Handler
	health         func(ctx context.Context) error
}

// NewRouter wires the routes. health reports store reachability; metrics
// may be nil.
func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metrics http.Handler,
	health func(ctx context.Context) error,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		metrics:        metrics,
		health:         health,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.metrics != nil {
		r.router.Handle("/metrics", r.metrics).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.Auth.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/contact", h.Contact.Submit).Methods(http.MethodPost)

	// Any signed-in session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}/slots", h.Appointment.AvailableSlots).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/events", h.Appointment.Events).Methods(http.MethodGet)
	protected.HandleFunc("/medicines", h.Medicine.ListMedicines).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", h.Appointment.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/me", h.Appointment.MyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions/me", h.Prescription.MyPrescriptions).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments/doctor", h.Appointment.DoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions", h.Prescription.Prescribe).Methods(http.MethodPost)

	// Staff routes
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleDoctor))
	staff.HandleFunc("/medicines/{id}/restock", h.Medicine.RequestRestock).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients", h.Patient.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", h.Patient.UpdatePatient).Methods(http.MethodPut)
	admin.HandleFunc("/patients/{id}", h.Patient.DeletePatient).Methods(http.MethodDelete)

	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)

	admin.HandleFunc("/accounts", h.Account.CreateAccount).Methods(http.MethodPost)
	admin.HandleFunc("/accounts", h.Account.GetAllAccounts).Methods(http.MethodGet)
	admin.HandleFunc("/accounts/{id}", h.Account.UpdateAccount).Methods(http.MethodPut)
	admin.HandleFunc("/accounts/{id}", h.Account.DeleteAccount).Methods(http.MethodDelete)

	admin.HandleFunc("/medicines/{id}/stock", h.Medicine.SetStock).Methods(http.MethodPut)
	admin.HandleFunc("/restock-requests", h.Medicine.ListRestockRequests).Methods(http.MethodGet)
	admin.HandleFunc("/prescriptions", h.Prescription.AllPrescriptions).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/export", h.Appointment.Export).Methods(http.MethodGet)
	admin.HandleFunc("/logs", h.ActivityLog.GetActivityLogs).Methods(http.MethodGet)
	admin.HandleFunc("/contact", h.Contact.ListMessages).Methods(http.MethodGet)
	admin.HandleFunc("/contact/{id}", h.Contact.DeleteMessage).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		if err := r.health(req.Context()); err != nil {
			response.ServiceUnavailable(w, "Record store is unavailable")
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
