package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

func slotAvailable(t *testing.T, fx *schedulerFixture, slotID int) bool {
	t.Helper()

	var slot entity.Slot
	if err := fx.db.Where("id = ?", slotID).First(&slot).Error; err != nil {
		t.Fatalf("load slot %d: %v", slotID, err)
	}
	return slot.IsAvailable
}

func TestCreateAppointment(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")

	resp, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
		SlotID:          &slotID,
		AppointmentType: "checkup",
		ReasonForVisit:  "annual physical",
	}, actor)
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	if resp.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("status = %q, want scheduled", resp.Status)
	}
	wantPrefix := fmt.Sprintf("APT-%s-", time.Now().UTC().Format("060102"))
	if got := resp.AppointmentCode; len(got) != len(wantPrefix)+4 || got[:len(wantPrefix)] != wantPrefix {
		t.Errorf("appointment code = %q, want prefix %q and 4-digit sequence", got, wantPrefix)
	}
	if resp.SlotID == nil || *resp.SlotID != slotID {
		t.Errorf("slot id = %v, want %d", resp.SlotID, slotID)
	}
	if resp.Patient == nil || resp.Patient.FullName != "Bob Lim" {
		t.Errorf("patient summary = %+v, want Bob Lim", resp.Patient)
	}
	if resp.Doctor == nil || resp.Doctor.FullName != "Dr. Alice Tan" {
		t.Errorf("doctor summary = %+v, want Dr. Alice Tan", resp.Doctor)
	}
	if slotAvailable(t, fx, slotID) {
		t.Error("slot still available after booking")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")

	base := func() *dto.CreateAppointmentRequest {
		return &dto.CreateAppointmentRequest{
			PatientID:       patientID,
			DoctorID:        doctorID,
			AppointmentDate: futureDate(1),
			AppointmentTime: "09:00",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*dto.CreateAppointmentRequest)
		wantErr error
	}{
		{
			name:    "past date",
			mutate:  func(r *dto.CreateAppointmentRequest) { r.AppointmentDate = "2020-01-15" },
			wantErr: ErrPastDate,
		},
		{
			name:    "malformed date",
			mutate:  func(r *dto.CreateAppointmentRequest) { r.AppointmentDate = "15/01/2030" },
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "malformed time",
			mutate:  func(r *dto.CreateAppointmentRequest) { r.AppointmentTime = "9am" },
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "unknown patient",
			mutate:  func(r *dto.CreateAppointmentRequest) { r.PatientID = uuid.New() },
			wantErr: ErrPatientNotFound,
		},
		{
			name:    "unknown doctor",
			mutate:  func(r *dto.CreateAppointmentRequest) { r.DoctorID = uuid.New() },
			wantErr: ErrDoctorNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(req)
			if _, err := fx.appointments.CreateAppointment(ctx, req, actor); !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateAppointment error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateAppointmentDoctorConflict(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	first := createPatient(t, fx.db, "Bob Lim")
	second := createPatient(t, fx.db, "Carol Ng")
	date := futureDate(2)

	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       first,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
	}, actor); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       second,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
	}, actor)
	if !errors.Is(err, ErrDoctorConflict) {
		t.Fatalf("second booking error = %v, want ErrDoctorConflict", err)
	}

	// The same time with another doctor books fine.
	otherDoctor := createDoctor(t, fx.db, "Dr. Dan Wu")
	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       second,
		DoctorID:        otherDoctor,
		AppointmentDate: date,
		AppointmentTime: "10:00",
	}, actor); err != nil {
		t.Fatalf("booking with other doctor: %v", err)
	}
}

func TestCreateAppointmentSlotUnavailable(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorA := createDoctor(t, fx.db, "Dr. Alice Tan")
	doctorB := createDoctor(t, fx.db, "Dr. Dan Wu")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")
	date := futureDate(1)

	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorA,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorB,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("reserved slot rebooking error = %v, want ErrSlotUnavailable", err)
	}

	missing := slotID + 100
	_, err = fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorB,
		AppointmentDate: date,
		AppointmentTime: "11:00",
		SlotID:          &missing,
	}, actor)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("missing slot booking error = %v, want ErrSlotUnavailable", err)
	}
}

func TestAppointmentCodeSequence(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	prefix := fmt.Sprintf("APT-%s-", time.Now().UTC().Format("060102"))

	for i, timeOfDay := range []string{"09:00", "09:30", "10:00"} {
		resp, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
			PatientID:       patientID,
			DoctorID:        doctorID,
			AppointmentDate: futureDate(1),
			AppointmentTime: timeOfDay,
		}, actor)
		if err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
		want := fmt.Sprintf("%s%04d", prefix, i+1)
		if resp.AppointmentCode != want {
			t.Errorf("booking %d code = %q, want %q", i, resp.AppointmentCode, want)
		}
	}
}

func TestUpdateAppointmentRebindSlot(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	oldSlot := createTestSlot(t, fx.db, 1, "09:00")
	newSlot := createTestSlot(t, fx.db, 2, "09:30")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
		SlotID:          &oldSlot,
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newTime := "09:30"
	resp, err := fx.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		AppointmentTime: &newTime,
		SlotID:          &newSlot,
	}, actor)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if resp.SlotID == nil || *resp.SlotID != newSlot {
		t.Errorf("slot id = %v, want %d", resp.SlotID, newSlot)
	}
	if resp.AppointmentTime != newTime {
		t.Errorf("time = %q, want %q", resp.AppointmentTime, newTime)
	}
	if !slotAvailable(t, fx, oldSlot) {
		t.Error("old slot not released after rebind")
	}
	if slotAvailable(t, fx, newSlot) {
		t.Error("new slot not reserved after rebind")
	}

	// ClearSlot unbinds and releases.
	resp, err = fx.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		ClearSlot: true,
	}, actor)
	if err != nil {
		t.Fatalf("clear slot: %v", err)
	}
	if resp.SlotID != nil {
		t.Errorf("slot id = %v after clear, want nil", resp.SlotID)
	}
	if !slotAvailable(t, fx, newSlot) {
		t.Error("slot not released after clear")
	}
}

func TestUpdateAppointmentConflict(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	date := futureDate(3)

	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
	}, actor); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
	}, actor)
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	clash := "09:00"
	_, err = fx.appointments.UpdateAppointment(ctx, second.ID, &dto.UpdateAppointmentRequest{
		AppointmentTime: &clash,
	}, actor)
	if !errors.Is(err, ErrDoctorConflict) {
		t.Fatalf("update into occupied time error = %v, want ErrDoctorConflict", err)
	}

	// Re-saving the unchanged triple must not conflict with itself.
	notes := "follow-up ordered"
	if _, err := fx.appointments.UpdateAppointment(ctx, second.ID, &dto.UpdateAppointmentRequest{
		Notes: &notes,
	}, actor); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestUpdateAppointmentStatusPatch(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed := string(entity.AppointmentStatusConfirmed)
	resp, err := fx.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		Status: &confirmed,
	}, actor)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if resp.Status != confirmed {
		t.Errorf("status = %q, want confirmed", resp.Status)
	}

	// Terminal statuses only move through Cancel/Complete.
	completed := string(entity.AppointmentStatusCompleted)
	if _, err := fx.appointments.UpdateAppointment(ctx, created.ID, &dto.UpdateAppointmentRequest{
		Status: &completed,
	}, actor); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("terminal patch error = %v, want ErrInvalidStatus", err)
	}
}

func TestCancelAppointment(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")
	date := futureDate(1)

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := fx.appointments.CancelAppointment(ctx, created.ID, actor)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusCancelled) {
		t.Errorf("status = %q, want cancelled", resp.Status)
	}
	if !slotAvailable(t, fx, slotID) {
		t.Error("slot not released on cancel")
	}

	// Cancelling again is a no-op, not an error.
	resp, err = fx.appointments.CancelAppointment(ctx, created.ID, actor)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusCancelled) {
		t.Errorf("status after second cancel = %q, want cancelled", resp.Status)
	}

	// The freed time is bookable again.
	other := createPatient(t, fx.db, "Carol Ng")
	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       other,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor); err != nil {
		t.Fatalf("rebooking freed time: %v", err)
	}

	if _, err := fx.appointments.CancelAppointment(ctx, uuid.New(), actor); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("cancel unknown error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestCompleteAppointment(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := fx.appointments.CompleteAppointment(ctx, created.ID, actor)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusCompleted) {
		t.Errorf("status = %q, want completed", resp.Status)
	}
	if slotAvailable(t, fx, slotID) {
		t.Error("slot released on complete, want it kept reserved")
	}
}

func TestDeleteAppointment(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := fx.appointments.DeleteAppointment(ctx, created.ID, actor); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := fx.queries.GetAppointment(ctx, created.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("get after delete error = %v, want ErrAppointmentNotFound", err)
	}
	if !slotAvailable(t, fx, slotID) {
		t.Error("slot not released on delete")
	}

	// Soft delete keeps the row.
	var raw int64
	if err := fx.db.Unscoped().Model(&entity.Appointment{}).Where("id = ?", created.ID).Count(&raw).Error; err != nil {
		t.Fatalf("raw count: %v", err)
	}
	if raw != 1 {
		t.Errorf("raw row count = %d, want 1", raw)
	}

	if err := fx.appointments.DeleteAppointment(ctx, created.ID, actor); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("second delete error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestDeleteAfterCancelKeepsRebookedSlotReserved(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	first := createPatient(t, fx.db, "Bob Lim")
	second := createPatient(t, fx.db, "Carol Ng")
	slotID := createTestSlot(t, fx.db, 1, "09:00")
	date := futureDate(1)

	cancelled, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       first,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := fx.appointments.CancelAppointment(ctx, cancelled.ID, actor); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Someone else takes the freed slot.
	if _, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       second,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		SlotID:          &slotID,
	}, actor); err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}

	// Deleting the cancelled appointment must not release the slot out
	// from under its new owner.
	if err := fx.appointments.DeleteAppointment(ctx, cancelled.ID, actor); err != nil {
		t.Fatalf("delete cancelled: %v", err)
	}
	if slotAvailable(t, fx, slotID) {
		t.Fatal("slot available again while a live appointment still holds it")
	}
}

func TestCancelCompletedAppointmentRejected(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")
	slotID := createTestSlot(t, fx.db, 1, "09:00")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
		SlotID:          &slotID,
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.appointments.CompleteAppointment(ctx, created.ID, actor); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := fx.appointments.CancelAppointment(ctx, created.ID, actor); !errors.Is(err, ErrTerminalStatus) {
		t.Fatalf("cancel completed error = %v, want ErrTerminalStatus", err)
	}

	reloaded, err := fx.queries.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != string(entity.AppointmentStatusCompleted) {
		t.Errorf("status = %q, want completed to stay completed", reloaded.Status)
	}
	if slotAvailable(t, fx, slotID) {
		t.Error("slot released despite the completed encounter occupying it")
	}
}

func TestCompleteCancelledAppointmentRejected(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	patientID := createPatient(t, fx.db, "Bob Lim")

	created, err := fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: futureDate(1),
		AppointmentTime: "09:00",
	}, actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.appointments.CancelAppointment(ctx, created.ID, actor); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := fx.appointments.CompleteAppointment(ctx, created.ID, actor); !errors.Is(err, ErrTerminalStatus) {
		t.Fatalf("complete cancelled error = %v, want ErrTerminalStatus", err)
	}

	reloaded, err := fx.queries.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != string(entity.AppointmentStatusCancelled) {
		t.Errorf("status = %q, want cancelled to stay cancelled", reloaded.Status)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	fx := newSchedulerFixture(t)
	ctx := context.Background()
	actor := uuid.New()

	doctorID := createDoctor(t, fx.db, "Dr. Alice Tan")
	date := futureDate(5)

	const writers = 8
	patients := make([]uuid.UUID, writers)
	for i := range patients {
		patients[i] = createPatient(t, fx.db, fmt.Sprintf("Patient %02d", i))
	}

	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
				PatientID:       patients[i],
				DoctorID:        doctorID,
				AppointmentDate: date,
				AppointmentTime: "14:00",
			}, actor)
		}(i)
	}
	wg.Wait()

	var won int
	for i, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrDoctorConflict):
		default:
			t.Errorf("writer %d unexpected error: %v", i, err)
		}
	}
	if won != 1 {
		t.Fatalf("winners = %d, want exactly 1", won)
	}

	var live int64
	if err := fx.db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_time = ?", doctorID, "14:00").
		Where("status IN ?", entity.LiveStatuses).
		Count(&live).Error; err != nil {
		t.Fatalf("count live: %v", err)
	}
	if live != 1 {
		t.Fatalf("live rows = %d, want 1", live)
	}
}
