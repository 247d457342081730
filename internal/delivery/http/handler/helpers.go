package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/response"

	"github.com/google/uuid"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// parsePagination reads skip/limit query parameters with defaults 0/100.
// Range validation happens in the usecases.
func parsePagination(r *http.Request) (int, int, error) {
	skip := defaultSkip
	limit := defaultLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("skip must be an integer")
		}
		skip = parsed
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("limit must be an integer")
		}
		limit = parsed
	}
	return skip, limit, nil
}

// actorFromRequest returns the authenticated user id set by AuthMiddleware.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actor, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User identity not found")
		return uuid.Nil, false
	}
	return actor, true
}

// respondUsecaseError maps usecase sentinel errors to HTTP statuses:
// not-found -> 404, conflicts -> 409, validation -> 400, anything else 500.
func respondUsecaseError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrDoctorConflict),
		errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrTerminalStatus):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrPastDate),
		errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidPagination),
		errors.Is(err, usecase.ErrInvalidUpcomingDays):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
