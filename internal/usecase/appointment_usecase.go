package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentUsecase is the scheduler: the only writer of appointment
// status and of the slot availability flag. Every operation runs its
// read-check-write sequence inside one transaction; the partial unique
// index on live (doctor, date, time) rows and the conditional slot update
// stop concurrent writers that pass the application-level checks.
type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	patientRepo     repository.PatientProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	cache           *service.AvailabilityCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	cache *service.AvailabilityCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		cache:           cache,
	}
}

// CreateAppointment books a new appointment.
//
// Flow (single transaction):
// 1. Reserve the slot if requested (conditional update, rows-affected check)
// 2. Conflict check on live (doctor, date, time)
// 3. Generate appointment code from today's sequence
// 4. Insert with status = scheduled
// A concurrent loser surfaces as a unique violation; the whole transaction
// is then retried once with fresh checks before the conflict is returned.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if err := validateTimeOfDay(req.AppointmentTime); err != nil {
		return nil, err
	}
	if date.Before(today()) {
		return nil, ErrPastDate
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	var created *entity.Appointment
	attempt := func(tx *gorm.DB) error {
		if req.SlotID != nil {
			slot, err := u.slotRepo.FindByID(tx, *req.SlotID)
			if err != nil {
				return err
			}
			if slot == nil || !slot.IsAvailable {
				return ErrSlotUnavailable
			}
			affected, err := u.slotRepo.Reserve(tx, *req.SlotID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrSlotUnavailable
			}
		}

		conflicts, err := u.appointmentRepo.CountConflicts(tx, req.DoctorID, date, req.AppointmentTime, nil)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrDoctorConflict
		}

		code, err := u.generateAppointmentCode(tx)
		if err != nil {
			return err
		}

		appointment := &entity.Appointment{
			ID:              uuid.New(),
			AppointmentCode: code,
			PatientID:       req.PatientID,
			DoctorID:        req.DoctorID,
			AppointmentDate: date,
			AppointmentTime: req.AppointmentTime,
			SlotID:          req.SlotID,
			AppointmentType: req.AppointmentType,
			Status:          entity.AppointmentStatusScheduled,
			ReasonForVisit:  req.ReasonForVisit,
			Notes:           req.Notes,
			CreatedBy:       &actor,
		}
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}
		created = appointment
		return nil
	}

	txErr := u.db.WithContext(ctx).Transaction(attempt)
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		// Lost a check-then-act race against a concurrent writer. One
		// retry with fresh checks turns it into a clean conflict error.
		u.log.Warnf("Unique violation on appointment create for doctor %s, retrying once", req.DoctorID)
		txErr = u.db.WithContext(ctx).Transaction(attempt)
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			txErr = ErrDoctorConflict
		}
	}
	if txErr != nil {
		return nil, txErr
	}

	if req.SlotID != nil {
		// Reserving a slot changes the global is_available flag, which
		// moves every doctor's cached availability, not just this one's.
		u.cache.InvalidateCatalog(ctx)
	} else {
		u.cache.Invalidate(ctx, req.DoctorID, req.AppointmentDate)
	}

	u.log.Infof("Appointment created: id=%s, code=%s, doctor=%s, date=%s %s",
		created.ID, created.AppointmentCode, created.DoctorID, req.AppointmentDate, created.AppointmentTime)
	return u.detailResponse(ctx, created.ID)
}

// UpdateAppointment applies a partial patch. When doctor, date or time
// change, the conflict check runs against the merged triple excluding this
// appointment. A slot change releases the old slot and reserves the new one.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	var (
		oldDoctorID uuid.UUID
		oldDate     string
		newDoctorID uuid.UUID
		newDate     string
		slotTouched bool
	)

	attempt := func(tx *gorm.DB) error {
		slotTouched = false

		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		oldDoctorID = appointment.DoctorID
		oldDate = appointment.AppointmentDate.Format(dateLayout)

		effDoctorID := appointment.DoctorID
		effDate := appointment.AppointmentDate
		effTime := appointment.AppointmentTime
		tripleChanged := false

		if req.DoctorID != nil && *req.DoctorID != appointment.DoctorID {
			doctor, err := u.doctorRepo.FindByUserID(tx, *req.DoctorID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return ErrDoctorNotFound
			}
			effDoctorID = *req.DoctorID
			tripleChanged = true
		}
		if req.AppointmentDate != nil {
			date, err := parseDate(*req.AppointmentDate)
			if err != nil {
				return err
			}
			if date.Before(today()) {
				return ErrPastDate
			}
			if !date.Equal(appointment.AppointmentDate) {
				effDate = date
				tripleChanged = true
			}
		}
		if req.AppointmentTime != nil && *req.AppointmentTime != appointment.AppointmentTime {
			if err := validateTimeOfDay(*req.AppointmentTime); err != nil {
				return err
			}
			effTime = *req.AppointmentTime
			tripleChanged = true
		}

		if tripleChanged {
			conflicts, err := u.appointmentRepo.CountConflicts(tx, effDoctorID, effDate, effTime, &appointment.ID)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return ErrDoctorConflict
			}
		}

		switch {
		case req.ClearSlot:
			if appointment.SlotID != nil {
				if _, err := u.slotRepo.Release(tx, *appointment.SlotID); err != nil {
					return err
				}
				appointment.SlotID = nil
				slotTouched = true
			}
		case req.SlotID != nil && (appointment.SlotID == nil || *appointment.SlotID != *req.SlotID):
			if appointment.SlotID != nil {
				if _, err := u.slotRepo.Release(tx, *appointment.SlotID); err != nil {
					return err
				}
			}
			slotTouched = true
			slot, err := u.slotRepo.FindByID(tx, *req.SlotID)
			if err != nil {
				return err
			}
			if slot == nil {
				return ErrSlotUnavailable
			}
			affected, err := u.slotRepo.Reserve(tx, *req.SlotID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrSlotUnavailable
			}
			appointment.SlotID = req.SlotID
		}

		if req.PatientID != nil && *req.PatientID != appointment.PatientID {
			patient, err := u.patientRepo.FindByUserID(tx, *req.PatientID)
			if err != nil {
				return err
			}
			if patient == nil {
				return ErrPatientNotFound
			}
			appointment.PatientID = *req.PatientID
		}
		if req.Status != nil {
			// Only the live statuses may be patched; terminal transitions
			// go through Cancel/Complete so slot side effects stay coupled.
			status := entity.AppointmentStatus(*req.Status)
			if status != entity.AppointmentStatusScheduled && status != entity.AppointmentStatusConfirmed {
				return ErrInvalidStatus
			}
			appointment.Status = status
		}
		if req.AppointmentType != nil {
			appointment.AppointmentType = *req.AppointmentType
		}
		if req.ReasonForVisit != nil {
			appointment.ReasonForVisit = *req.ReasonForVisit
		}
		if req.Notes != nil {
			appointment.Notes = *req.Notes
		}

		appointment.DoctorID = effDoctorID
		appointment.AppointmentDate = effDate
		appointment.AppointmentTime = effTime
		appointment.UpdatedBy = &actor

		newDoctorID = effDoctorID
		newDate = effDate.Format(dateLayout)

		return u.appointmentRepo.Update(tx, appointment)
	}

	txErr := u.db.WithContext(ctx).Transaction(attempt)
	if errors.Is(txErr, gorm.ErrDuplicatedKey) {
		u.log.Warnf("Unique violation on appointment update %s, retrying once", id)
		txErr = u.db.WithContext(ctx).Transaction(attempt)
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			txErr = ErrDoctorConflict
		}
	}
	if txErr != nil {
		return nil, txErr
	}

	if slotTouched {
		u.cache.InvalidateCatalog(ctx)
	} else {
		u.cache.Invalidate(ctx, oldDoctorID, oldDate)
		u.cache.Invalidate(ctx, newDoctorID, newDate)
	}

	return u.detailResponse(ctx, id)
}

// CancelAppointment releases the slot (if any) and marks the appointment
// cancelled. Cancelling an already cancelled appointment succeeds silently
// without touching the slot again; other terminal states are rejected so a
// completed encounter can never be un-done.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	var doctorID uuid.UUID
	var date string
	var released bool

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		doctorID = appointment.DoctorID
		date = appointment.AppointmentDate.Format(dateLayout)

		if appointment.Status == entity.AppointmentStatusCancelled {
			// re-cancel is a no-op; the slot was already given back
			return nil
		}
		if appointment.IsTerminal() {
			return ErrTerminalStatus
		}

		if appointment.SlotID != nil {
			if _, err := u.slotRepo.Release(tx, *appointment.SlotID); err != nil {
				return err
			}
			released = true
		}

		appointment.Cancel()
		appointment.UpdatedBy = &actor

		return u.appointmentRepo.Update(tx, appointment)
	})
	if err != nil {
		return nil, err
	}

	if released {
		u.cache.InvalidateCatalog(ctx)
	} else {
		u.cache.Invalidate(ctx, doctorID, date)
	}

	u.log.Infof("Appointment cancelled: id=%s", id)
	return u.detailResponse(ctx, id)
}

// CompleteAppointment marks the encounter done. The slot is not released:
// a completed encounter occupied it. Only live appointments can complete.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	var doctorID uuid.UUID
	var date string

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if appointment.IsTerminal() {
			return ErrTerminalStatus
		}

		appointment.Complete()
		appointment.UpdatedBy = &actor
		doctorID = appointment.DoctorID
		date = appointment.AppointmentDate.Format(dateLayout)

		return u.appointmentRepo.Update(tx, appointment)
	})
	if err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx, doctorID, date)

	u.log.Infof("Appointment completed: id=%s", id)
	return u.detailResponse(ctx, id)
}

// DeleteAppointment soft-deletes the row and releases its slot. The record
// survives physically; it just disappears from every listing. A cancelled
// appointment already returned its slot on cancel, so the release is
// skipped: the slot may belong to another live appointment by now.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	var doctorID uuid.UUID
	var date string
	var released bool

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if appointment.SlotID != nil && appointment.Status != entity.AppointmentStatusCancelled {
			if _, err := u.slotRepo.Release(tx, *appointment.SlotID); err != nil {
				return err
			}
			released = true
		}

		doctorID = appointment.DoctorID
		date = appointment.AppointmentDate.Format(dateLayout)

		return u.appointmentRepo.SoftDelete(tx, id, &actor)
	})
	if err != nil {
		return err
	}

	if released {
		u.cache.InvalidateCatalog(ctx)
	} else {
		u.cache.Invalidate(ctx, doctorID, date)
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

// generateAppointmentCode builds APT-YYMMDD-NNNN where NNNN is 1 + the
// number of codes already issued today, soft-deleted rows included. The
// count is racy by itself; the unique index on appointment_code plus the
// caller's retry close the gap.
func (u *appointmentUsecase) generateAppointmentCode(tx *gorm.DB) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", appointmentPrefix, time.Now().UTC().Format("060102"))
	count, err := u.appointmentRepo.CountByCodePrefix(tx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (u *appointmentUsecase) detailResponse(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil || appointment == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", id, err)
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}
