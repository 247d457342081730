package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO. The
// patient/doctor/slot blocks are filled only when the relations were
// preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		AppointmentCode: appointment.AppointmentCode,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: appointment.AppointmentTime,
		SlotID:          appointment.SlotID,
		AppointmentType: appointment.AppointmentType,
		Status:          string(appointment.Status),
		ReasonForVisit:  appointment.ReasonForVisit,
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient != nil && appointment.Patient.UserID != uuid.Nil {
		response.Patient = &dto.PatientSummary{
			ID:          appointment.Patient.UserID,
			FullName:    appointment.Patient.User.FullName,
			PatientCode: appointment.Patient.PatientCode,
			DateOfBirth: appointment.Patient.DateOfBirth.Format("2006-01-02"),
			Gender:      appointment.Patient.Gender,
		}
	}
	if appointment.Doctor != nil && appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = &dto.DoctorSummary{
			ID:             appointment.Doctor.UserID,
			FullName:       appointment.Doctor.User.FullName,
			DoctorCode:     appointment.Doctor.DoctorCode,
			Specialization: appointment.Doctor.Specialization,
		}
	}
	if appointment.Slot != nil && appointment.Slot.ID != 0 {
		response.Slot = SlotToResponse(appointment.Slot)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = *AppointmentToResponse(&appointment)
	}
	return responses
}

// AvailabilityEntriesToResponses converts cached availability entries to DTOs
func AvailabilityEntriesToResponses(entries []service.AvailabilityEntry) []dto.AvailabilitySlotResponse {
	responses := make([]dto.AvailabilitySlotResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.AvailabilitySlotResponse{
			SlotID:    entry.SlotID,
			Time:      entry.Time,
			Available: entry.Available,
		}
	}
	return responses
}
