package usecase

import (
	"context"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentQueryUsecase is the read side: filtered retrieval and simple
// aggregate counts over the appointment store. It never mutates anything.
type AppointmentQueryUsecase interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context, skip, limit int) (*dto.AppointmentListResponse, error)
	SearchAppointments(ctx context.Context, req *dto.SearchAppointmentsRequest, skip, limit int) (*dto.AppointmentListResponse, error)
	GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, skip, limit int) (*dto.AppointmentListResponse, error)
	GetAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, dateFrom, dateTo string, skip, limit int) (*dto.AppointmentListResponse, error)
	GetAppointmentsByDate(ctx context.Context, date string, skip, limit int) (*dto.AppointmentListResponse, error)
	GetTodayAppointments(ctx context.Context, skip, limit int) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointments(ctx context.Context, days, skip, limit int) (*dto.AppointmentListResponse, error)
	GetStats(ctx context.Context, dateFrom, dateTo string) (*dto.AppointmentStatsResponse, error)
}

type appointmentQueryUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentQueryUsecase(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

func (u *appointmentQueryUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentQueryUsecase) GetAllAppointments(ctx context.Context, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentQueryUsecase) SearchAppointments(ctx context.Context, req *dto.SearchAppointmentsRequest, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}
	if req.DateFrom != "" {
		if _, err := parseDate(req.DateFrom); err != nil {
			return nil, err
		}
	}
	if req.DateTo != "" {
		if _, err := parseDate(req.DateTo); err != nil {
			return nil, err
		}
	}
	if req.Status != "" && !entity.IsValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	filter := &entity.AppointmentFilter{
		PatientName: req.PatientName,
		DoctorName:  req.DoctorName,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Status:      req.Status,
	}

	appointments, total, err := u.appointmentRepo.Search(u.db.WithContext(ctx), filter, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to search appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentQueryUsecase) GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	appointments, total, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentQueryUsecase) GetAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID, dateFrom, dateTo string, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	var from, to *time.Time
	if dateFrom != "" {
		parsed, err := parseDate(dateFrom)
		if err != nil {
			return nil, err
		}
		from = &parsed
	}
	if dateTo != "" {
		parsed, err := parseDate(dateTo)
		if err != nil {
			return nil, err
		}
		to = &parsed
	}

	appointments, total, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, from, to, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentQueryUsecase) GetAppointmentsByDate(ctx context.Context, date string, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	appointments, total, err := u.appointmentRepo.FindByDate(u.db.WithContext(ctx), day, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find appointments for date %s: %+v", date, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

// GetTodayAppointments returns today's live (scheduled/confirmed)
// appointments ordered by time.
func (u *appointmentQueryUsecase) GetTodayAppointments(ctx context.Context, skip, limit int) (*dto.AppointmentListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	now := today()
	appointments, total, err := u.appointmentRepo.FindLiveInDateRange(u.db.WithContext(ctx), now, now, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find today's appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

// GetUpcomingAppointments returns live appointments with dates in
// [today, today+days] inclusive, ordered by date then time ascending.
func (u *appointmentQueryUsecase) GetUpcomingAppointments(ctx context.Context, days, skip, limit int) (*dto.AppointmentListResponse, error) {
	if days < 1 || days > maxUpcomingDays {
		return nil, ErrInvalidUpcomingDays
	}
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	from := today()
	to := from.AddDate(0, 0, days)
	appointments, total, err := u.appointmentRepo.FindLiveInDateRange(u.db.WithContext(ctx), from, to, limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentQueryUsecase) GetStats(ctx context.Context, dateFrom, dateTo string) (*dto.AppointmentStatsResponse, error) {
	var from, to *time.Time
	if dateFrom != "" {
		parsed, err := parseDate(dateFrom)
		if err != nil {
			return nil, err
		}
		from = &parsed
	}
	if dateTo != "" {
		parsed, err := parseDate(dateTo)
		if err != nil {
			return nil, err
		}
		to = &parsed
	}

	db := u.db.WithContext(ctx)
	stats := &dto.AppointmentStatsResponse{}

	total, err := u.appointmentRepo.CountAll(db, from, to)
	if err != nil {
		return nil, err
	}
	stats.Total = total

	counts := map[entity.AppointmentStatus]*int64{
		entity.AppointmentStatusScheduled: &stats.Scheduled,
		entity.AppointmentStatusConfirmed: &stats.Confirmed,
		entity.AppointmentStatusCompleted: &stats.Completed,
		entity.AppointmentStatusCancelled: &stats.Cancelled,
		entity.AppointmentStatusNoShow:    &stats.NoShow,
	}
	for status, target := range counts {
		count, err := u.appointmentRepo.CountByStatus(db, status, from, to)
		if err != nil {
			return nil, err
		}
		*target = count
	}

	return stats, nil
}
