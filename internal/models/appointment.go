package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCheckedIn = "checked_in"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID `gorm:"type:uuid;index;not null" json:"patient_id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;index;not null" json:"doctor_id"`
	ScheduledAt     time.Time `gorm:"index" json:"scheduled_at"`
	DurationMinutes int       `gorm:"default:15" json:"duration_minutes"`
	Reason          string    `json:"reason"`
	Status          string    `gorm:"index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
