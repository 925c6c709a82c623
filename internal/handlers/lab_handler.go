package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/models"
)

type LabHandler struct {
	db *gorm.DB
}

func NewLabHandler(db *gorm.DB) *LabHandler {
	return &LabHandler{db: db}
}

func (h *LabHandler) Create(c *gin.Context) {
	var input struct {
		PatientID string `json:"patient_id" binding:"required"`
		TestName  string `json:"test_name" binding:"required"`
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

	order := models.LabOrder{
		ID:        uuid.New(),
		PatientID: patientID,
		OrderedBy: actorID(c),
		TestName:  input.TestName,
		Status:    models.LabOrderOrdered,
	}
	if err := h.db.Create(&order).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lab_order": order})
}

func (h *LabHandler) List(c *gin.Context) {
	query := h.db.Model(&models.LabOrder{})

	if p := c.Query("patient_id"); p != "" {
		query = query.Where("patient_id = ?", p)
	}
	if s := c.Query("status"); s != "" && s != "all" {
		query = query.Where("status = ?", s)
	}

	var orders []models.LabOrder
	if err := query.Order("created_at DESC").Limit(200).Find(&orders).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": orders})
}

// RecordResult completes a lab order with its result text. Completed and
// cancelled orders are immutable.
func (h *LabHandler) RecordResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lab order ID", "code": CodeValidationError})
		return
	}

	var input struct {
		Result string `json:"result" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	var order models.LabOrder
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		respondError(c, err)
		return
	}
	if order.Status == models.LabOrderCompleted || order.Status == models.LabOrderCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "lab order is already " + order.Status, "code": CodeEditNotAllowed})
		return
	}

	now := time.Now()
	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":      models.LabOrderCompleted,
		"result":      input.Result,
		"resulted_at": now,
	}).Error; err != nil {
		respondError(c, err)
		return
	}
	order.Status = models.LabOrderCompleted
	order.Result = input.Result
	order.ResultedAt = &now

	c.JSON(http.StatusOK, gin.H{"lab_order": order})
}
