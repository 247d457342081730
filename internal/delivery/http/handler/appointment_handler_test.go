package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/usecase"
	"clinic-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	createFn   func(ctx context.Context, req *dto.CreateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error)
	updateFn   func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error)
	cancelFn   func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error)
	completeFn func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error)
	deleteFn   func(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

func (s *stubAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.createFn(ctx, req, actor)
}

func (s *stubAppointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.updateFn(ctx, id, req, actor)
}

func (s *stubAppointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.cancelFn(ctx, id, actor)
}

func (s *stubAppointmentUsecase) CompleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.completeFn(ctx, id, actor)
}

func (s *stubAppointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return s.deleteFn(ctx, id, actor)
}

func newAppointmentHandler(stub *stubAppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(stub, nil, nil, validator.NewValidator())
}

func TestCreateAppointmentHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"doctor conflict", usecase.ErrDoctorConflict, http.StatusConflict},
		{"slot taken", usecase.ErrSlotUnavailable, http.StatusConflict},
		{"unknown patient", usecase.ErrPatientNotFound, http.StatusNotFound},
		{"past date", usecase.ErrPastDate, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newAppointmentHandler(&stubAppointmentUsecase{
				createFn: func(context.Context, *dto.CreateAppointmentRequest, uuid.UUID) (*dto.AppointmentResponse, error) {
					return nil, tc.usecaseErr
				},
			})

			body, _ := json.Marshal(dto.CreateAppointmentRequest{
				PatientID:       uuid.New(),
				DoctorID:        uuid.New(),
				AppointmentDate: "2030-01-15",
				AppointmentTime: "09:00",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.CreateAppointment(rec, authenticated(req, uuid.New()))

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCreateAppointmentHandlerRejectsMissingFields(t *testing.T) {
	h := newAppointmentHandler(&stubAppointmentUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader([]byte(`{"appointment_time":"09:00"}`)))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, authenticated(req, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCancelAppointmentHandler(t *testing.T) {
	id := uuid.New()
	h := newAppointmentHandler(&stubAppointmentUsecase{
		cancelFn: func(_ context.Context, got uuid.UUID, _ uuid.UUID) (*dto.AppointmentResponse, error) {
			if got != id {
				t.Errorf("cancel id = %s, want %s", got, id)
			}
			return &dto.AppointmentResponse{ID: got, Status: "cancelled"}, nil
		},
	})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		h.CancelAppointment(w, authenticated(r, uuid.New()))
	}).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+id.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/appointments/not-a-uuid/cancel", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}
