package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
)

type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var input struct {
		PatientID       string `json:"patient_id" binding:"required"`
		DoctorID        string `json:"doctor_id" binding:"required"`
		ScheduledAt     string `json:"scheduled_at" binding:"required"`
		DurationMinutes int    `json:"duration_minutes"`
		Reason          string `json:"reason"`
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
	doctorID, err := uuid.Parse(input.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor ID", "code": CodeValidationError})
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_at, expected RFC3339", "code": CodeValidationError})
		return
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = 15
	}

	appt := models.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		Reason:          input.Reason,
		Status:          models.AppointmentScheduled,
	}
	if err := h.db.Create(&appt).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

func (h *AppointmentHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Appointment{})

	if p := c.Query("patient_id"); p != "" {
		query = query.Where("patient_id = ?", p)
	}
	if d := c.Query("doctor_id"); d != "" {
		query = query.Where("doctor_id = ?", d)
	}
	if s := c.Query("status"); s != "" && s != "all" {
		query = query.Where("status = ?", s)
	}
	if day := c.Query("date"); day != "" {
		from, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-mm-dd", "code": CodeValidationError})
			return
		}
		query = query.Where("scheduled_at >= ? AND scheduled_at < ?", from, from.AddDate(0, 0, 1))
	}

	var appts []models.Appointment
	if err := query.Order("scheduled_at ASC").Limit(200).Find(&appts).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": appts})
}

var appointmentTransitions = map[string][]string{
	models.AppointmentScheduled: {models.AppointmentCheckedIn, models.AppointmentCancelled, models.AppointmentNoShow},
	models.AppointmentCheckedIn: {models.AppointmentCompleted, models.AppointmentCancelled},
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment ID", "code": CodeValidationError})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	var appt models.Appointment
	if err := h.db.First(&appt, "id = ?", id).Error; err != nil {
		respondError(c, err)
		return
	}

	allowed := false
	for _, next := range appointmentTransitions[appt.Status] {
		if next == input.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusConflict, gin.H{
			"error": "cannot move appointment from " + appt.Status + " to " + input.Status,
			"code":  CodeEditNotAllowed,
		})
		return
	}

	if err := h.db.Model(&appt).Update("status", input.Status).Error; err != nil {
		respondError(c, err)
		return
	}
	appt.Status = input.Status

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
