package repository

import (
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository owns persistence of appointment rows. Methods take
// the *gorm.DB handle so usecases can run them inside a transaction.
type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	SoftDelete(db *gorm.DB, id uuid.UUID, deletedBy *uuid.UUID) error

	// CountConflicts counts live (scheduled/confirmed) appointments holding
	// the given doctor/date/time triple, excluding excludeID when non-nil.
	CountConflicts(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID *uuid.UUID) (int64, error)

	// CountByCodePrefix counts every appointment whose code starts with the
	// given prefix, including soft-deleted rows.
	CountByCodePrefix(db *gorm.DB, prefix string) (int64, error)

	// FindBookedSlotIDs returns the slot ids referenced by live appointments
	// for a doctor on a date.
	FindBookedSlotIDs(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]int, error)

	Search(db *gorm.DB, filter *entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Appointment, int64, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, dateFrom, dateTo *time.Time, limit, offset int) ([]entity.Appointment, int64, error)
	FindByDate(db *gorm.DB, date time.Time, limit, offset int) ([]entity.Appointment, int64, error)

	// FindLiveInDateRange returns scheduled/confirmed appointments with
	// dates in [from, to] inclusive, ordered by date then time ascending.
	FindLiveInDateRange(db *gorm.DB, from, to time.Time, limit, offset int) ([]entity.Appointment, int64, error)

	CountByStatus(db *gorm.DB, status entity.AppointmentStatus, dateFrom, dateTo *time.Time) (int64, error)
	CountAll(db *gorm.DB, dateFrom, dateTo *time.Time) (int64, error)
}
