package usecase

import (
	"context"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AvailabilityUsecase computes which slots a doctor can still be booked
// into on a date. The slot grid is shared between all doctors, so the
// global is_available flag alone is not enough: the booking set for this
// doctor and date is recomputed and subtracted from the catalog.
type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	doctorRepo      repository.DoctorProfileRepository
	cache           *service.AvailabilityCache
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	cache *service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		cache:           cache,
	}
}

func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(today()) {
		return nil, ErrPastDate
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if entries, ok := u.cache.Get(ctx, doctorID, date); ok {
		return &dto.AvailabilityResponse{
			DoctorID: doctorID,
			Date:     date,
			Slots:    converter.AvailabilityEntriesToResponses(entries),
		}, nil
	}

	bookedSlotIDs, err := u.appointmentRepo.FindBookedSlotIDs(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to collect booked slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	slots, err := u.slotRepo.FindAvailableExcluding(u.db.WithContext(ctx), bookedSlotIDs)
	if err != nil {
		u.log.Warnf("Failed to find available slots: %+v", err)
		return nil, err
	}

	entries := make([]service.AvailabilityEntry, len(slots))
	for i, slot := range slots {
		entries[i] = service.AvailabilityEntry{
			SlotID:    slot.ID,
			Time:      slot.SlotTime,
			Available: true,
		}
	}
	u.cache.Set(ctx, doctorID, date, entries)

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    converter.AvailabilityEntriesToResponses(entries),
	}, nil
}
