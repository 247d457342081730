package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	// AppointmentStatusNoShow exists in the schema but no operation sets it.
	AppointmentStatusNoShow AppointmentStatus = "no_show"
)

// LiveStatuses are the statuses that occupy a doctor's time and a slot.
// Completed, cancelled and no_show appointments do not block new bookings.
var LiveStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
}

// AllStatuses lists every status the stats endpoint reports on.
var AllStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s string) bool {
	for _, status := range AllStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled encounter between one patient and one
// doctor. SlotID is a weak reference into the shared slot grid; the
// appointment does not own the slot.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentCode string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"appointment_code"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	SlotID          *int              `gorm:"index" json:"slot_id,omitempty"`
	AppointmentType string            `gorm:"type:varchar(50)" json:"appointment_type,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	ReasonForVisit  string            `gorm:"type:text" json:"reason_for_visit,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       *uuid.UUID        `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy       *uuid.UUID        `gorm:"type:uuid" json:"updated_by,omitempty"`
	DeletedBy       *uuid.UUID        `gorm:"type:uuid" json:"deleted_by,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Slot    *Slot           `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsLive checks if the appointment still occupies its doctor/slot
func (a *Appointment) IsLive() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsTerminal checks if the appointment reached a final status
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}
