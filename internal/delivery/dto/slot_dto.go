package dto

import (
	"time"
)

// Request DTOs

type CreateSlotRequest struct {
	SlotIndex int    `json:"slot_index" validate:"required,min=1"`
	SlotTime  string `json:"slot_time" validate:"required"`
}

// UpdateSlotRequest is a partial patch: only non-nil fields are applied.
type UpdateSlotRequest struct {
	SlotIndex *int    `json:"slot_index,omitempty" validate:"omitempty,min=1"`
	SlotTime  *string `json:"slot_time,omitempty"`
}

// Response DTOs

type SlotResponse struct {
	ID          int       `json:"id"`
	SlotIndex   int       `json:"slot_index"`
	SlotTime    string    `json:"slot_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int64          `json:"total"`
}
