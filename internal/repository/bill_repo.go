package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Expose DB for the billing service's transactional work
func (r *BillRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches the full aggregate: bill, items, payment ledger.
func (r *BillRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC") }).
		First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

type BillFilter struct {
	PatientID *uuid.UUID
	Status    string
	Limit     int
	Offset    int
}

// List returns bills matching the filter plus the total match count.
func (r *BillRepository) List(ctx context.Context, f BillFilter) ([]models.Bill, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Bill{})

	if f.PatientID != nil {
		query = query.Where("patient_id = ?", *f.PatientID)
	}
	if f.Status != "" && f.Status != "all" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var bills []models.Bill
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Preload("Items").
		Find(&bills).Error
	return bills, total, err
}

// AuditTrail returns the audit entries for one bill, oldest first.
func (r *BillRepository) AuditTrail(ctx context.Context, billID uuid.UUID) ([]models.BillAuditLog, error) {
	var entries []models.BillAuditLog
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
