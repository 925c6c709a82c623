package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MRN            string     `gorm:"uniqueIndex;not null" json:"mrn"`
	FirstName      string     `gorm:"not null" json:"first_name"`
	LastName       string     `json:"last_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         string     `json:"gender"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Address        string     `json:"address"`
	BloodGroup     string     `json:"blood_group"`
	Allergies      string     `json:"allergies"`
	MedicalHistory string     `json:"medical_history"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
