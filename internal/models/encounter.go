package models

import (
	"time"

	"github.com/google/uuid"
)

// Encounter is one clinical visit note recorded by a doctor.
type Encounter struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"patient_id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"doctor_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`
	Symptoms      string     `json:"symptoms"`
	Diagnosis     string     `json:"diagnosis"`
	Notes         string     `json:"notes"`
	RecordedAt    time.Time  `json:"recorded_at"`
	CreatedAt     time.Time  `json:"created_at"`
}
