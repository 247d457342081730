package repository

import (
	"errors"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) Create(db *gorm.DB, slot *entity.Slot) error {
	return db.Create(slot).Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id int) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Slot, int64, error) {
	var slots []entity.Slot
	var total int64

	if err := db.Model(&entity.Slot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("slot_index ASC").
		Limit(limit).
		Offset(offset).
		Find(&slots).Error
	if err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

func (r *slotRepository) Update(db *gorm.DB, slot *entity.Slot) error {
	return db.Save(slot).Error
}

func (r *slotRepository) SoftDelete(db *gorm.DB, id int, deletedBy *uuid.UUID) (int64, error) {
	if err := db.Model(&entity.Slot{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}

func (r *slotRepository) FindAvailableExcluding(db *gorm.DB, excludedIDs []int) ([]entity.Slot, error) {
	var slots []entity.Slot
	query := db.Where("is_available = ?", true)
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}
	err := query.Order("slot_index ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Reserve flips the availability flag only when it is still true, so two
// concurrent writers cannot both claim the slot. The caller checks affected
// rows.
func (r *slotRepository) Reserve(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) Release(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND is_available = ?", id, false).
		Update("is_available", true)
	return result.RowsAffected, result.Error
}
