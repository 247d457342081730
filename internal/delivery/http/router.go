package http

import (
	"net/http"

	"clinic-appointment-service/internal/delivery/http/handler"
	"clinic-appointment-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	slotHandler        *handler.SlotHandler
	appointmentHandler *handler.AppointmentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		slotHandler:        slotHandler,
		appointmentHandler: appointmentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Slot catalog: reads for any authenticated user, mutation admin-only
	slots := api.PathPrefix("/slots").Subrouter()
	slots.Use(r.authMiddleware.Authenticate)
	slots.HandleFunc("", r.slotHandler.GetAllSlots).Methods(http.MethodGet)
	slots.HandleFunc("/{id:[0-9]+}", r.slotHandler.GetSlot).Methods(http.MethodGet)

	slotAdmin := api.PathPrefix("/slots").Subrouter()
	slotAdmin.Use(r.authMiddleware.Authenticate)
	slotAdmin.Use(middleware.RequireAdmin)
	slotAdmin.HandleFunc("", r.slotHandler.CreateSlot).Methods(http.MethodPost)
	slotAdmin.HandleFunc("/{id:[0-9]+}", r.slotHandler.UpdateSlot).Methods(http.MethodPut)
	slotAdmin.HandleFunc("/{id:[0-9]+}", r.slotHandler.DeleteSlot).Methods(http.MethodDelete)

	// Appointment reads
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/search", r.appointmentHandler.SearchAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/today", r.appointmentHandler.GetTodayAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/upcoming", r.appointmentHandler.GetUpcomingAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/stats", r.appointmentHandler.GetStats).Methods(http.MethodGet)
	appointments.HandleFunc("/availability", r.appointmentHandler.GetAvailability).Methods(http.MethodGet)
	appointments.HandleFunc("/patient/{patientId}", r.appointmentHandler.GetAppointmentsByPatient).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}", r.appointmentHandler.GetAppointmentsByDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/date/{date}", r.appointmentHandler.GetAppointmentsByDate).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)

	// Appointment mutation: staff only
	appointmentStaff := api.PathPrefix("/appointments").Subrouter()
	appointmentStaff.Use(r.authMiddleware.Authenticate)
	appointmentStaff.Use(middleware.RequireAdminOrDoctor)
	appointmentStaff.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointmentStaff.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointmentStaff.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	appointmentStaff.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointmentStaff.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
