package usecase

import (
	"errors"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")

	// ErrDoctorConflict: another live appointment already holds the same
	// doctor/date/time triple.
	ErrDoctorConflict = errors.New("doctor already has an appointment at this time")
	// ErrSlotUnavailable: the requested slot is missing, deleted or
	// already reserved.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrTerminalStatus: cancel/complete applied to an appointment that
	// already reached a terminal status.
	ErrTerminalStatus = errors.New("appointment is already in a terminal status")

	ErrPastDate            = errors.New("date must not be before today")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidPagination   = errors.New("skip must be >= 0 and limit between 1 and 500")
	ErrInvalidUpcomingDays = errors.New("days must be between 1 and 30")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maxListLimit      = 500
	maxUpcomingDays   = 30
	appointmentPrefix = "APT"
)

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

func validateTimeOfDay(value string) error {
	if _, err := time.Parse(timeLayout, value); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func validatePagination(skip, limit int) error {
	if skip < 0 || limit < 1 || limit > maxListLimit {
		return ErrInvalidPagination
	}
	return nil
}
