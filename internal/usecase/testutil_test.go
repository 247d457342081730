package usecase

import (
	"fmt"
	"io"
	"testing"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	repoImpl "clinic-appointment-service/internal/repository"
	"clinic-appointment-service/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// schema mirrors db/migrations in sqlite dialect, including the partial
// unique index that backs the live-conflict guarantee.
var testSchema = []string{
	`CREATE TABLE roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role_name TEXT UNIQUE NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		role_id INTEGER NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		full_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE doctor_profiles (
		user_id TEXT PRIMARY KEY,
		doctor_code TEXT UNIQUE NOT NULL,
		specialization TEXT NOT NULL,
		biography TEXT
	)`,
	`CREATE TABLE patient_profiles (
		user_id TEXT PRIMARY KEY,
		patient_code TEXT UNIQUE NOT NULL,
		phone_number TEXT,
		date_of_birth DATETIME NOT NULL,
		gender TEXT NOT NULL,
		address TEXT
	)`,
	`CREATE TABLE slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slot_index INTEGER NOT NULL,
		slot_time TEXT NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_by TEXT,
		updated_by TEXT,
		deleted_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE appointments (
		id TEXT PRIMARY KEY,
		appointment_code TEXT NOT NULL,
		patient_id TEXT NOT NULL,
		doctor_id TEXT NOT NULL,
		appointment_date DATETIME NOT NULL,
		appointment_time TEXT NOT NULL,
		slot_id INTEGER,
		appointment_type TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		reason_for_visit TEXT,
		notes TEXT,
		created_by TEXT,
		updated_by TEXT,
		deleted_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE UNIQUE INDEX idx_appointments_code ON appointments(appointment_code)`,
	`CREATE UNIQUE INDEX idx_appointments_live_doctor_slot
		ON appointments(doctor_id, appointment_date, appointment_time)
		WHERE status IN ('scheduled', 'confirmed') AND deleted_at IS NULL`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes
	// concurrent transactions deterministically.
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	for i := range roles {
		if err := db.Create(&roles[i]).Error; err != nil {
			t.Fatalf("seed roles: %v", err)
		}
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestCache(t *testing.T) (*service.AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return service.NewAvailabilityCache(client, newTestLogger()), mr
}

func createDoctor(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()

	active := true
	user := entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    fmt.Sprintf("%s@clinic.test", uuid.NewString()),
		Password: "x",
		FullName: name,
		IsActive: &active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create doctor user: %v", err)
	}

	profile := entity.DoctorProfile{
		UserID:         user.ID,
		DoctorCode:     "DOC-" + uuid.NewString()[:8],
		Specialization: "Cardiology",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create doctor profile: %v", err)
	}
	return user.ID
}

func createPatient(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()

	active := true
	user := entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDPatient,
		Email:    fmt.Sprintf("%s@clinic.test", uuid.NewString()),
		Password: "x",
		FullName: name,
		IsActive: &active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create patient user: %v", err)
	}

	profile := entity.PatientProfile{
		UserID:      user.ID,
		PatientCode: "PAT-" + uuid.NewString()[:8],
		DateOfBirth: mustDate(t, "1990-05-20"),
		Gender:      entity.GenderFemale,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create patient profile: %v", err)
	}
	return user.ID
}

func createTestSlot(t *testing.T, db *gorm.DB, index int, timeOfDay string) int {
	t.Helper()

	slot := entity.Slot{SlotIndex: index, SlotTime: timeOfDay, IsAvailable: true}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("create slot: %v", err)
	}
	return slot.ID
}

func mustDate(t *testing.T, value string) (parsed time.Time) {
	t.Helper()

	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

// futureDate returns today+days as YYYY-MM-DD, always bookable.
func futureDate(days int) string {
	return today().AddDate(0, 0, days).Format(dateLayout)
}

// schedulerFixture wires the full booking stack against sqlite and
// miniredis.
type schedulerFixture struct {
	db           *gorm.DB
	redis        *miniredis.Miniredis
	appointments AppointmentUsecase
	availability AvailabilityUsecase
	queries      AppointmentQueryUsecase
	slots        SlotUsecase
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	db := newTestDB(t)
	cache, mr := newTestCache(t)
	log := newTestLogger()

	appointmentRepo := repoImpl.NewAppointmentRepository()
	slotRepo := repoImpl.NewSlotRepository()
	doctorRepo := repoImpl.NewDoctorProfileRepository()
	patientRepo := repoImpl.NewPatientProfileRepository()

	return &schedulerFixture{
		db:           db,
		redis:        mr,
		appointments: NewAppointmentUsecase(db, log, appointmentRepo, slotRepo, patientRepo, doctorRepo, cache),
		availability: NewAvailabilityUsecase(db, log, appointmentRepo, slotRepo, doctorRepo, cache),
		queries:      NewAppointmentQueryUsecase(db, log, appointmentRepo),
		slots:        NewSlotUsecase(db, log, slotRepo),
	}
}
