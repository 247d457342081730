package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"
	"clinic-appointment-service/pkg/validator"

	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	slot, err := h.slotUsecase.CreateSlot(r.Context(), &req, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to create slot")
		return
	}

	response.Success(w, http.StatusCreated, "Slot created successfully", slot)
}

func (h *SlotHandler) GetAllSlots(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	slots, err := h.slotUsecase.GetAllSlots(r.Context(), skip, limit)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	slot, err := h.slotUsecase.GetSlot(r.Context(), slotID)
	if err != nil {
		respondUsecaseError(w, err, "Failed to get slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot retrieved successfully", slot)
}

func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	var req dto.UpdateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	slot, err := h.slotUsecase.UpdateSlot(r.Context(), slotID, &req, actor)
	if err != nil {
		respondUsecaseError(w, err, "Failed to update slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot updated successfully", slot)
}

func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), slotID, actor); err != nil {
		respondUsecaseError(w, err, "Failed to delete slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}
