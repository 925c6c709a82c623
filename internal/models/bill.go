package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill statuses. Status is always derived from (total_amount, paid_amount)
// except for cancelled, which is sticky once set.
const (
	BillStatusPending   = "pending"
	BillStatusPartial   = "partial"
	BillStatusPaid      = "paid"
	BillStatusCancelled = "cancelled"
)

const (
	PaymentMethodCash      = "cash"
	PaymentMethodCard      = "card"
	PaymentMethodInsurance = "insurance"
)

type Bill struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"patient_id"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid" json:"created_by"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(12,2)" json:"total_amount"`
	PaidAmount  decimal.Decimal  `gorm:"type:decimal(12,2)" json:"paid_amount"`
	Status      string           `gorm:"index" json:"status"`
	Notes       string           `json:"notes"`
	Items       []BillItem       `gorm:"foreignKey:BillID" json:"items"`
	Payments    []PaymentHistory `gorm:"foreignKey:BillID" json:"payments"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// RemainingBalance is total minus paid, never negative.
func (b *Bill) RemainingBalance() decimal.Decimal {
	rem := b.TotalAmount.Sub(b.PaidAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

type BillItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BillID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"bill_id"`
	ItemType    string          `json:"item_type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentHistory is an append-only ledger. Rows are never updated or
// deleted by the application; paid_amount is always the SUM over this table.
type PaymentHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BillID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"bill_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Method         string          `json:"method"`
	ReceivedBy     uuid.UUID       `gorm:"type:uuid" json:"received_by"`
	Notes          string          `json:"notes"`
	IdempotencyKey *string         `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
}
