package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *models.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientRepository) Update(ctx context.Context, p *models.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Search matches name, MRN or phone with a simple LIKE
func (r *PatientRepository) Search(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.Patient{})
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(mrn) LIKE ? OR phone LIKE ?",
			like, like, like, like,
		)
	}

	var patients []models.Patient
	err := dbQuery.Order("created_at DESC").Limit(limit).Find(&patients).Error
	return patients, err
}
