package repository

import (
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	CountAll(db *gorm.DB) (int64, error)
}

type RoleRepository interface {
	FirstOrCreate(db *gorm.DB, role *entity.Role) error
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
}
