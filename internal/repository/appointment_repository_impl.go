package repository

import (
	"errors"
	"strings"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").Preload("Doctor.User").Preload("Slot").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	if err := db.Model(&entity.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("appointment_date DESC, appointment_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor", "Slot").Save(appointment).Error
}

func (r *appointmentRepository) SoftDelete(db *gorm.DB, id uuid.UUID, deletedBy *uuid.UUID) error {
	if err := db.Model(&entity.Appointment{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) CountConflicts(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID *uuid.UUID) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, date, timeOfDay).
		Where("status IN ?", entity.LiveStatuses)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// CountByCodePrefix scans soft-deleted rows too: codes are unique across
// every appointment ever created.
func (r *appointmentRepository) CountByCodePrefix(db *gorm.DB, prefix string) (int64, error) {
	var count int64
	err := db.Unscoped().Model(&entity.Appointment{}).
		Where("appointment_code LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) FindBookedSlotIDs(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]int, error) {
	var slotIDs []int
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Where("status IN ?", entity.LiveStatuses).
		Where("slot_id IS NOT NULL").
		Pluck("slot_id", &slotIDs).Error
	if err != nil {
		return nil, err
	}
	return slotIDs, nil
}

func (r *appointmentRepository) Search(db *gorm.DB, filter *entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.PatientName != "" {
			query = query.
				Joins("JOIN patient_profiles ON patient_profiles.user_id = appointments.patient_id").
				Joins("JOIN users AS patient_users ON patient_users.id = patient_profiles.user_id").
				Where("LOWER(patient_users.full_name) LIKE ?", "%"+strings.ToLower(filter.PatientName)+"%")
		}
		if filter.DoctorName != "" {
			query = query.
				Joins("JOIN doctor_profiles ON doctor_profiles.user_id = appointments.doctor_id").
				Joins("JOIN users AS doctor_users ON doctor_users.id = doctor_profiles.user_id").
				Where("LOWER(doctor_users.full_name) LIKE ?", "%"+strings.ToLower(filter.DoctorName)+"%")
		}
		if filter.DateFrom != "" {
			if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
				query = query.Where("appointments.appointment_date >= ?", from)
			}
		}
		if filter.DateTo != "" {
			if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
				query = query.Where("appointments.appointment_date <= ?", to)
			}
		}
		if filter.Status != "" {
			query = query.Where("appointments.status = ?", filter.Status)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Order("appointments.appointment_date DESC, appointments.appointment_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Order("appointment_date DESC, appointment_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, dateFrom, dateTo *time.Time, limit, offset int) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).Where("doctor_id = ?", doctorID)
	if dateFrom != nil {
		query = query.Where("appointment_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("appointment_date <= ?", *dateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Order("appointment_date DESC, appointment_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByDate(db *gorm.DB, date time.Time, limit, offset int) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).Where("appointment_date = ?", date)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Order("appointment_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindLiveInDateRange(db *gorm.DB, from, to time.Time, limit, offset int) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date <= ?", from, to).
		Where("status IN ?", entity.LiveStatuses)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Order("appointment_date ASC, appointment_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, status entity.AppointmentStatus, dateFrom, dateTo *time.Time) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{}).Where("status = ?", status)
	if dateFrom != nil {
		query = query.Where("appointment_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("appointment_date <= ?", *dateTo)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountAll(db *gorm.DB, dateFrom, dateTo *time.Time) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{})
	if dateFrom != nil {
		query = query.Where("appointment_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("appointment_date <= ?", *dateTo)
	}
	err := query.Count(&count).Error
	return count, err
}
