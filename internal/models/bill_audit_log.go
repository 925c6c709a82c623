package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AuditBillCreated     = "created"
	AuditItemsReplaced   = "items_replaced"
	AuditPaymentRecorded = "payment_recorded"
	AuditBillCancelled   = "cancelled"
)

type BillAuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BillID      uuid.UUID `gorm:"type:uuid;index"`
	Action      string
	PerformedBy uuid.UUID `gorm:"type:uuid"`
	Details     datatypes.JSON
	CreatedAt   time.Time
}
