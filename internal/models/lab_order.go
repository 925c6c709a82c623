package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LabOrderOrdered    = "ordered"
	LabOrderInProgress = "in_progress"
	LabOrderCompleted  = "completed"
	LabOrderCancelled  = "cancelled"
)

type LabOrder struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"patient_id"`
	OrderedBy  uuid.UUID  `gorm:"type:uuid" json:"ordered_by"`
	TestName   string     `gorm:"not null" json:"test_name"`
	Status     string     `gorm:"index" json:"status"`
	Result     string     `json:"result"`
	ResultedAt *time.Time `json:"resulted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
