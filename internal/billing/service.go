package billing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// duplicateWindow is the span within which a repeated payment of the same
// amount from the same payer is treated as an accidental double submit.
const duplicateWindow = 10 * time.Second

// Service owns every mutation of the billing ledger. Totals, paid amounts
// and statuses are computed here and nowhere else, always inside the same
// transaction that writes the rows.
type Service struct {
	billRepo    *repository.BillRepository
	patientRepo *repository.PatientRepository
	db          *gorm.DB
}

func NewService(billRepo *repository.BillRepository, patientRepo *repository.PatientRepository) *Service {
	return &Service{
		billRepo:    billRepo,
		patientRepo: patientRepo,
		db:          billRepo.DB(),
	}
}

type ItemInput struct {
	ItemType    string          `json:"item_type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateBillRequest struct {
	PatientID uuid.UUID
	CreatedBy uuid.UUID
	Items     []ItemInput
	Notes     string
}

type RecordPaymentRequest struct {
	BillID         uuid.UUID
	Amount         decimal.Decimal
	Method         string
	ReceivedBy     uuid.UUID
	Notes          string
	IdempotencyKey string
}

func validMethod(m string) bool {
	switch m {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodInsurance:
		return true
	}
	return false
}

// buildItems validates line-item inputs and materializes them with computed
// per-line totals.
func buildItems(billID uuid.UUID, inputs []ItemInput) ([]models.BillItem, error) {
	items := make([]models.BillItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Description == "" {
			return nil, validationErr("items", "description is required")
		}
		if in.Quantity <= 0 {
			return nil, validationErr("items", "quantity must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return nil, validationErr("items", "unit price must not be negative")
		}
		itemType := in.ItemType
		if itemType == "" {
			itemType = "other"
		}
		// Round the unit price once and derive the line total from the
		// rounded value, so the stored columns always multiply out.
		unitPrice := in.UnitPrice.Round(2)
		items = append(items, models.BillItem{
			ID:          uuid.New(),
			BillID:      billID,
			ItemType:    itemType,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  ItemTotal(in.Quantity, unitPrice),
			CreatedAt:   time.Now(),
		})
	}
	return items, nil
}

// CreateBill creates a bill with its line items. A bill may start with zero
// items: total 0, status pending.
func (s *Service) CreateBill(ctx context.Context, req CreateBillRequest) (*models.Bill, error) {
	if req.PatientID == uuid.Nil {
		return nil, validationErr("patient_id", "is required")
	}
	exists, err := s.patientRepo.Exists(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	billID := uuid.New()
	items, err := buildItems(billID, req.Items)
	if err != nil {
		return nil, err
	}
	total := SumItems(items)

	bill := &models.Bill{
		ID:          billID,
		PatientID:   req.PatientID,
		CreatedBy:   req.CreatedBy,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Status:      DeriveStatus(total, decimal.Zero, false),
		Notes:       req.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return writeAudit(tx, billID, req.CreatedBy, models.AuditBillCreated, map[string]interface{}{
			"total_amount": total.String(),
			"item_count":   len(items),
		})
	})
	if err != nil {
		return nil, err
	}

	bill.Items = items
	return bill, nil
}

// RecordPayment appends a payment to the ledger. The read of the current
// balance, the overpayment check, the insert, and the re-derivation of
// paid_amount/status all happen inside one transaction holding a row lock on
// the bill, so two racing payments can never jointly exceed the balance.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*models.PaymentHistory, error) {
	// Validate the amount as it will be stored: a sub-cent input like 0.004
	// rounds to 0.00 and must not enter the ledger.
	amount := req.Amount.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErr("amount", "must be positive")
	}
	if !validMethod(req.Method) {
		return nil, validationErr("payment_method", "must be cash, card or insurance")
	}

	payment := &models.PaymentHistory{
		ID:         uuid.New(),
		BillID:     req.BillID,
		Amount:     amount,
		Method:     req.Method,
		ReceivedBy: req.ReceivedBy,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		payment.IdempotencyKey = &key
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, req.BillID)
		if err != nil {
			return err
		}
		if bill.Status == models.BillStatusCancelled {
			return ErrEditNotAllowed
		}

		remaining := bill.TotalAmount.Sub(bill.PaidAmount)
		if payment.Amount.GreaterThan(remaining) {
			return ErrOverpayment
		}

		if err := checkDuplicate(tx, payment); err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		// Re-derive from the full ledger rather than incrementing, so the
		// stored paid_amount is always replayable from history alone.
		paid, err := sumLedger(tx, bill.ID)
		if err != nil {
			return err
		}
		status := DeriveStatus(bill.TotalAmount, paid, false)

		if err := tx.Model(&models.Bill{}).Where("id = ?", bill.ID).
			Updates(map[string]interface{}{"paid_amount": paid, "status": status}).Error; err != nil {
			return err
		}

		return writeAudit(tx, bill.ID, req.ReceivedBy, models.AuditPaymentRecorded, map[string]interface{}{
			"amount":      payment.Amount.String(),
			"method":      payment.Method,
			"paid_amount": paid.String(),
			"status":      status,
		})
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ReplaceItems swaps the full line-item set of a bill. Allowed while the
// bill is pending or partial; a paid or cancelled bill is immutable. The new
// total may not fall below what has already been paid, and the status is
// re-derived against the new total, so a bill can never report paid while
// owing money.
func (s *Service) ReplaceItems(ctx context.Context, billID uuid.UUID, inputs []ItemInput, actor uuid.UUID) (*models.Bill, error) {
	items, err := buildItems(billID, inputs)
	if err != nil {
		return nil, err
	}
	total := SumItems(items)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, billID)
		if err != nil {
			return err
		}
		if bill.Status == models.BillStatusPaid || bill.Status == models.BillStatusCancelled {
			return ErrEditNotAllowed
		}
		if total.LessThan(bill.PaidAmount) {
			return validationErr("items", "new total is below the amount already paid")
		}

		if err := tx.Where("bill_id = ?", billID).Delete(&models.BillItem{}).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		status := DeriveStatus(total, bill.PaidAmount, false)
		if err := tx.Model(&models.Bill{}).Where("id = ?", billID).
			Updates(map[string]interface{}{"total_amount": total, "status": status}).Error; err != nil {
			return err
		}

		return writeAudit(tx, billID, actor, models.AuditItemsReplaced, map[string]interface{}{
			"total_amount": total.String(),
			"item_count":   len(items),
			"status":       status,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetBill(ctx, billID)
}

// CancelBill marks a bill cancelled. Cancellation is sticky: the bill can
// never be edited or paid afterwards.
func (s *Service) CancelBill(ctx context.Context, billID, actor uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := lockBill(tx, billID)
		if err != nil {
			return err
		}
		if bill.Status == models.BillStatusCancelled {
			return ErrEditNotAllowed
		}
		if err := tx.Model(&models.Bill{}).Where("id = ?", billID).
			Update("status", models.BillStatusCancelled).Error; err != nil {
			return err
		}
		return writeAudit(tx, billID, actor, models.AuditBillCancelled, nil)
	})
}

// GetBill returns the full aggregate with items and payments.
func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBillNotFound
	}
	return bill, err
}

func (s *Service) ListBills(ctx context.Context, filter repository.BillFilter) ([]models.Bill, int64, error) {
	return s.billRepo.List(ctx, filter)
}

// Summary aggregates billed/collected amounts grouped by status.
type Summary struct {
	TotalBills     int64           `json:"total_bills"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	Outstanding    decimal.Decimal `json:"outstanding"`

	PendingCount   int64 `json:"pending_count"`
	PartialCount   int64 `json:"partial_count"`
	PaidCount      int64 `json:"paid_count"`
	CancelledCount int64 `json:"cancelled_count"`
}

type summaryRow struct {
	Status string
	Count  int64
	Billed decimal.Decimal
	Paid   decimal.Decimal
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	var rows []summaryRow

	err := s.db.WithContext(ctx).Model(&models.Bill{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_amount),0) as billed, COALESCE(SUM(paid_amount),0) as paid").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return out, err
	}

	out.TotalBilled = decimal.Zero
	out.TotalCollected = decimal.Zero
	for _, r := range rows {
		out.TotalBills += r.Count
		switch r.Status {
		case models.BillStatusPending:
			out.PendingCount = r.Count
		case models.BillStatusPartial:
			out.PartialCount = r.Count
		case models.BillStatusPaid:
			out.PaidCount = r.Count
		case models.BillStatusCancelled:
			out.CancelledCount = r.Count
			// cancelled bills do not count toward receivables
			continue
		}
		out.TotalBilled = out.TotalBilled.Add(r.Billed)
		out.TotalCollected = out.TotalCollected.Add(r.Paid)
	}
	out.Outstanding = out.TotalBilled.Sub(out.TotalCollected)
	return out, nil
}

// lockBill loads a bill under a row lock. Postgres takes FOR UPDATE; sqlite
// has no row locks and serializes writers per database instead.
func lockBill(tx *gorm.DB, id uuid.UUID) (*models.Bill, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var bill models.Bill
	if err := q.First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func sumLedger(tx *gorm.DB, billID uuid.UUID) (decimal.Decimal, error) {
	var paid decimal.Decimal
	row := tx.Model(&models.PaymentHistory{}).
		Where("bill_id = ?", billID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&paid); err != nil {
		return decimal.Zero, err
	}
	return paid.Round(2), nil
}

func checkDuplicate(tx *gorm.DB, p *models.PaymentHistory) error {
	if p.IdempotencyKey != nil {
		var n int64
		if err := tx.Model(&models.PaymentHistory{}).
			Where("idempotency_key = ?", *p.IdempotencyKey).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateSubmission
		}
	}

	// Heuristic double-submit guard: same bill, amount and payer inside a
	// short window.
	var n int64
	since := time.Now().Add(-duplicateWindow)
	if err := tx.Model(&models.PaymentHistory{}).
		Where("bill_id = ? AND amount = ? AND received_by = ? AND created_at > ?",
			p.BillID, p.Amount, p.ReceivedBy, since).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateSubmission
	}
	return nil
}

func writeAudit(tx *gorm.DB, billID, actor uuid.UUID, action string, details map[string]interface{}) error {
	entry := &models.BillAuditLog{
		ID:          uuid.New(),
		BillID:      billID,
		Action:      action,
		PerformedBy: actor,
		CreatedAt:   time.Now(),
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		entry.Details = payload
	}
	return tx.Create(entry).Error
}
