package repository

import (
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	Create(db *gorm.DB, slot *entity.Slot) error
	FindByID(db *gorm.DB, id int) (*entity.Slot, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Slot, int64, error)
	Update(db *gorm.DB, slot *entity.Slot) error
	SoftDelete(db *gorm.DB, id int, deletedBy *uuid.UUID) (int64, error)

	// FindAvailableExcluding returns live slots with is_available = true
	// whose id is not in excludedIDs, ordered by slot_index ascending.
	FindAvailableExcluding(db *gorm.DB, excludedIDs []int) ([]entity.Slot, error)

	// Reserve flips is_available from true to false and reports affected
	// rows; 0 means the slot was missing, deleted or already reserved.
	Reserve(db *gorm.DB, id int) (int64, error)

	// Release flips is_available back to true. Releasing an already
	// available slot affects 0 rows and is not an error.
	Release(db *gorm.DB, id int) (int64, error)
}
