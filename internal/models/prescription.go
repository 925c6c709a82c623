package models

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"patient_id"`
	DoctorID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"doctor_id"`
	EncounterID  *uuid.UUID `gorm:"type:uuid" json:"encounter_id,omitempty"`
	Medication   string     `gorm:"not null" json:"medication"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	DurationDays int        `json:"duration_days"`
	Instructions string     `json:"instructions"`
	CreatedAt    time.Time  `json:"created_at"`
}
