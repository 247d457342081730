package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data. Owned by an
// external collaborator; the scheduling core only reads it for display
// enrichment and name filtering.
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DoctorCode     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"doctor_code"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
