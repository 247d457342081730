package usecase

import (
	"context"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SlotUsecase owns the slot catalog: the fixed grid of bookable time
// positions. It never touches is_available; that flag belongs to the
// appointment usecase.
type SlotUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest, actor uuid.UUID) (*dto.SlotResponse, error)
	GetSlot(ctx context.Context, slotID int) (*dto.SlotResponse, error)
	GetAllSlots(ctx context.Context, skip, limit int) (*dto.SlotListResponse, error)
	UpdateSlot(ctx context.Context, slotID int, req *dto.UpdateSlotRequest, actor uuid.UUID) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID int, actor uuid.UUID) error
}

type slotUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	slotRepo repository.SlotRepository
}

func NewSlotUsecase(db *gorm.DB, log *logrus.Logger, slotRepo repository.SlotRepository) SlotUsecase {
	return &slotUsecase{
		db:       db,
		log:      log,
		slotRepo: slotRepo,
	}
}

func (u *slotUsecase) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest, actor uuid.UUID) (*dto.SlotResponse, error) {
	if err := validateTimeOfDay(req.SlotTime); err != nil {
		return nil, err
	}

	// slot_index duplicates are tolerated at this layer
	slot := &entity.Slot{
		SlotIndex:   req.SlotIndex,
		SlotTime:    req.SlotTime,
		IsAvailable: true,
		CreatedBy:   &actor,
	}

	if err := u.slotRepo.Create(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to create slot: %+v", err)
		return nil, err
	}

	return converter.SlotToResponse(slot), nil
}

func (u *slotUsecase) GetSlot(ctx context.Context, slotID int) (*dto.SlotResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	return converter.SlotToResponse(slot), nil
}

func (u *slotUsecase) GetAllSlots(ctx context.Context, skip, limit int) (*dto.SlotListResponse, error) {
	if err := validatePagination(skip, limit); err != nil {
		return nil, err
	}

	slots, total, err := u.slotRepo.FindAll(u.db.WithContext(ctx), limit, skip)
	if err != nil {
		u.log.Warnf("Failed to find slots: %+v", err)
		return nil, err
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: total,
	}, nil
}

func (u *slotUsecase) UpdateSlot(ctx context.Context, slotID int, req *dto.UpdateSlotRequest, actor uuid.UUID) (*dto.SlotResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", slotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if req.SlotIndex != nil {
		slot.SlotIndex = *req.SlotIndex
	}
	if req.SlotTime != nil {
		if err := validateTimeOfDay(*req.SlotTime); err != nil {
			return nil, err
		}
		slot.SlotTime = *req.SlotTime
	}
	slot.UpdatedBy = &actor

	if err := u.slotRepo.Update(u.db.WithContext(ctx), slot); err != nil {
		u.log.Warnf("Failed to update slot %d: %+v", slotID, err)
		return nil, err
	}

	return converter.SlotToResponse(slot), nil
}

func (u *slotUsecase) DeleteSlot(ctx context.Context, slotID int, actor uuid.UUID) error {
	affected, err := u.slotRepo.SoftDelete(u.db.WithContext(ctx), slotID, &actor)
	if err != nil {
		u.log.Warnf("Failed to delete slot %d: %+v", slotID, err)
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
