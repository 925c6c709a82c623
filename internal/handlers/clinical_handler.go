package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
)

// ClinicalHandler covers encounters and prescriptions.
type ClinicalHandler struct {
	db *gorm.DB
}

func NewClinicalHandler(db *gorm.DB) *ClinicalHandler {
	return &ClinicalHandler{db: db}
}

func (h *ClinicalHandler) CreateEncounter(c *gin.Context) {
	var input struct {
		PatientID     string `json:"patient_id" binding:"required"`
		AppointmentID string `json:"appointment_id"`
		Symptoms      string `json:"symptoms"`
		Diagnosis     string `json:"diagnosis"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	patientID, err := uuid.Parse(input.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	enc := models.Encounter{
		ID:         uuid.New(),
		PatientID:  patientID,
		DoctorID:   actorID(c),
		Symptoms:   input.Symptoms,
		Diagnosis:  input.Diagnosis,
		Notes:      input.Notes,
		RecordedAt: time.Now(),
	}
	if input.AppointmentID != "" {
		apptID, err := uuid.Parse(input.AppointmentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment ID", "code": CodeValidationError})
			return
		}
		enc.AppointmentID = &apptID
	}

	if err := h.db.Create(&enc).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"encounter": enc})
}

func (h *ClinicalHandler) ListEncounters(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	var encounters []models.Encounter
	if err := h.db.Where("patient_id = ?", patientID).
		Order("recorded_at DESC").Limit(200).Find(&encounters).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": encounters})
}

func (h *ClinicalHandler) CreatePrescription(c *gin.Context) {
	var input struct {
		PatientID    string `json:"patient_id" binding:"required"`
		EncounterID  string `json:"encounter_id"`
		Medication   string `json:"medication" binding:"required"`
		Dosage       string `json:"dosage"`
		Frequency    string `json:"frequency"`
		DurationDays int    `json:"duration_days"`
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	patientID, err := uuid.Parse(input.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	rx := models.Prescription{
		ID:           uuid.New(),
		PatientID:    patientID,
		DoctorID:     actorID(c),
		Medication:   input.Medication,
		Dosage:       input.Dosage,
		Frequency:    input.Frequency,
		DurationDays: input.DurationDays,
		Instructions: input.Instructions,
	}
	if input.EncounterID != "" {
		encID, err := uuid.Parse(input.EncounterID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid encounter ID", "code": CodeValidationError})
			return
		}
		rx.EncounterID = &encID
	}

	if err := h.db.Create(&rx).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prescription": rx})
}

func (h *ClinicalHandler) ListPrescriptions(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	var prescriptions []models.Prescription
	if err := h.db.Where("patient_id = ?", patientID).
		Order("created_at DESC").Limit(200).Find(&prescriptions).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": prescriptions})
}
