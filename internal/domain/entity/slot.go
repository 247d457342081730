package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot represents one fixed daily time position in the shared booking grid.
// IsAvailable is a derived cache over live appointments and is written only
// by the appointment usecase.
type Slot struct {
	ID          int            `gorm:"primaryKey;autoIncrement" json:"id"`
	SlotIndex   int            `gorm:"not null;index" json:"slot_index"`
	SlotTime    string         `gorm:"type:varchar(5);not null" json:"slot_time"`
	IsAvailable bool           `gorm:"not null;default:true;index" json:"is_available"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID     `gorm:"type:uuid" json:"updated_by,omitempty"`
	DeletedBy   *uuid.UUID     `gorm:"type:uuid" json:"deleted_by,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Slot) TableName() string {
	return "slots"
}
