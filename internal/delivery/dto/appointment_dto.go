package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"`
	AppointmentTime string    `json:"appointment_time" validate:"required"`
	SlotID          *int      `json:"slot_id,omitempty"`
	AppointmentType string    `json:"appointment_type,omitempty" validate:"omitempty,max=50"`
	ReasonForVisit  string    `json:"reason_for_visit,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateAppointmentRequest is a partial patch: only non-nil fields are
// applied. ClearSlot unbinds the slot; SlotID rebinds to another one. The
// two are mutually exclusive.
type UpdateAppointmentRequest struct {
	PatientID       *uuid.UUID `json:"patient_id,omitempty"`
	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	AppointmentDate *string    `json:"appointment_date,omitempty"`
	AppointmentTime *string    `json:"appointment_time,omitempty"`
	SlotID          *int       `json:"slot_id,omitempty"`
	ClearSlot       bool       `json:"clear_slot,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=scheduled confirmed"`
	AppointmentType *string    `json:"appointment_type,omitempty" validate:"omitempty,max=50"`
	ReasonForVisit  *string    `json:"reason_for_visit,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

type SearchAppointmentsRequest struct {
	PatientName string
	DoctorName  string
	DateFrom    string
	DateTo      string
	Status      string
}

// Response DTOs

type PatientSummary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	PatientCode string    `json:"patient_code"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Gender      string    `json:"gender,omitempty"`
}

type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	DoctorCode     string    `json:"doctor_code"`
	Specialization string    `json:"specialization,omitempty"`
}

type AppointmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	AppointmentCode string          `json:"appointment_code"`
	PatientID       uuid.UUID       `json:"patient_id"`
	DoctorID        uuid.UUID       `json:"doctor_id"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	SlotID          *int            `json:"slot_id,omitempty"`
	AppointmentType string          `json:"appointment_type,omitempty"`
	Status          string          `json:"status"`
	ReasonForVisit  string          `json:"reason_for_visit,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Patient         *PatientSummary `json:"patient,omitempty"`
	Doctor          *DoctorSummary  `json:"doctor,omitempty"`
	Slot            *SlotResponse   `json:"slot,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

type AvailabilitySlotResponse struct {
	SlotID    int    `json:"slot_id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID                  `json:"doctor_id"`
	Date     string                     `json:"date"`
	Slots    []AvailabilitySlotResponse `json:"slots"`
}

type AppointmentStatsResponse struct {
	Total     int64 `json:"total"`
	Scheduled int64 `json:"scheduled"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	NoShow    int64 `json:"no_show"`
}
