package main

import (
	"fmt"
	"time"

	"clinic-appointment-service/config"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	doctorCount  = 10
	patientCount = 50
)

var specializations = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := seedRoles(tx); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
		if err := seedAdmin(tx); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := seedDoctors(tx, doctorCount); err != nil {
			return fmt.Errorf("seed doctors: %w", err)
		}
		if err := seedPatients(tx, patientCount); err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		if err := seedSlots(tx); err != nil {
			return fmt.Errorf("seed slots: %w", err)
		}
		return nil
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Info("Seeding complete")
}

func seedRoles(tx *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "System administrator"},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor, Description: "Medical practitioner"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Registered patient"},
	}

	for i := range roles {
		if err := tx.Where("id = ?", roles[i].ID).FirstOrCreate(&roles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&entity.User{}).Where("role_id = ?", entity.RoleIDAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	active := true
	admin := entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    "admin@clinic.local",
		Password: string(hashed),
		FullName: "System Administrator",
		IsActive: &active,
	}
	return tx.Create(&admin).Error
}

func seedDoctors(tx *gorm.DB, count int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("doctor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		active := true
		user := entity.User{
			RoleID:   entity.RoleIDDoctor,
			Email:    gofakeit.Email(),
			Password: string(hashed),
			FullName: "Dr. " + gofakeit.Name(),
			IsActive: &active,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := entity.DoctorProfile{
			UserID:         user.ID,
			DoctorCode:     fmt.Sprintf("DOC-%04d", i+1),
			Specialization: specializations[gofakeit.Number(0, len(specializations)-1)],
			Biography:      gofakeit.Sentence(12),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedPatients(tx *gorm.DB, count int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("patient123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	genders := []string{entity.GenderMale, entity.GenderFemale}

	for i := 0; i < count; i++ {
		active := true
		user := entity.User{
			RoleID:   entity.RoleIDPatient,
			Email:    gofakeit.Email(),
			Password: string(hashed),
			FullName: gofakeit.Name(),
			IsActive: &active,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := entity.PatientProfile{
			UserID:      user.ID,
			PatientCode: fmt.Sprintf("PAT-%04d", i+1),
			PhoneNumber: gofakeit.Phone(),
			DateOfBirth: gofakeit.DateRange(
				time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
			),
			Gender:  genders[gofakeit.Number(0, 1)],
			Address: gofakeit.Address().Address,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedSlots creates the default appointment grid, half-hour slots from
// 09:00 through 16:30.
func seedSlots(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&entity.Slot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	index := 1
	for hour := 9; hour < 17; hour++ {
		for _, minute := range []int{0, 30} {
			slot := entity.Slot{
				SlotIndex:   index,
				SlotTime:    fmt.Sprintf("%02d:%02d", hour, minute),
				IsAvailable: true,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
			index++
		}
	}
	return nil
}
