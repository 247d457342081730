package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
	"clinic-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase  usecase.AppointmentUsecase
	queryUsecase        usecase.AppointmentQueryUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	queryUsecase usecase.AppointmentQueryUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase:  appointmentUsecase,
		queryUsecase:        queryUsecase,
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.queryUsecase.GetAllAppointments(r.Context(), skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.queryUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id, actor); err != nil {
		respondUsecaseError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), id, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CompleteAppointment(r.Context(), id, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

func (h *AppointmentHandler) SearchAppointments(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	query := r.URL.Query()
	req := &dto.SearchAppointmentsRequest{
		PatientName: query.Get("patient_name"),
		DoctorName:  query.Get("doctor_name"),
		DateFrom:    query.Get("date_from"),
		DateTo:      query.Get("date_to"),
		Status:      query.Get("status"),
	}

	appointments, err := h.queryUsecase.SearchAppointments(r.Context(), req, skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to search appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.queryUsecase.GetAppointmentsByPatient(r.Context(), patientID, skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	query := r.URL.Query()
	appointments, err := h.queryUsecase.GetAppointmentsByDoctor(r.Context(), doctorID, query.Get("date_from"), query.Get("date_to"), skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByDate(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.queryUsecase.GetAppointmentsByDate(r.Context(), mux.Vars(r)["date"], skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetTodayAppointments(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.queryUsecase.GetTodayAppointments(r.Context(), skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get today's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "days must be an integer")
			return
		}
		days = parsed
	}

	appointments, err := h.queryUsecase.GetUpcomingAppointments(r.Context(), days, skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	stats, err := h.queryUsecase.GetStats(r.Context(), query.Get("date_from"), query.Get("date_to"))
	if err != nil {
		respondUsecaseError(w, err, "Failed to get appointment stats")
		return
	}

	response.Success(w, http.StatusOK, "Appointment stats retrieved successfully", stats)
}

func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := uuid.Parse(query.Get("doctor_id"))
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	date := query.Get("date")
	if date == "" {
		response.BadRequest(w, "date is required")
		return
	}

	availability, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
