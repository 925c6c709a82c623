package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

type PatientHandler struct {
	repo *repository.PatientRepository
}

func NewPatientHandler(repo *repository.PatientRepository) *PatientHandler {
	return &PatientHandler{repo: repo}
}

type patientInput struct {
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"max=100"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	Address        string `json:"address"`
	BloodGroup     string `json:"blood_group"`
	Allergies      string `json:"allergies"`
	MedicalHistory string `json:"medical_history"`
}

// newMRN generates a medical record number from a fresh uuid.
func newMRN() string {
	return "MRN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

func (h *PatientHandler) Create(c *gin.Context) {
	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	patient := models.Patient{
		ID:             uuid.New(),
		MRN:            newMRN(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Gender:         input.Gender,
		Phone:          input.Phone,
		Email:          input.Email,
		Address:        input.Address,
		BloodGroup:     input.BloodGroup,
		Allergies:      input.Allergies,
		MedicalHistory: input.MedicalHistory,
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth, expected yyyy-mm-dd", "code": CodeValidationError})
			return
		}
		patient.DateOfBirth = &dob
	}

	if err := h.repo.Create(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"patient": patient})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	patient, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (h *PatientHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	patients, err := h.repo.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": patients})
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	patient, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
		return
	}

	patient.FirstName = input.FirstName
	patient.LastName = input.LastName
	patient.Gender = input.Gender
	patient.Phone = input.Phone
	patient.Email = input.Email
	patient.Address = input.Address
	patient.BloodGroup = input.BloodGroup
	patient.Allergies = input.Allergies
	patient.MedicalHistory = input.MedicalHistory
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth, expected yyyy-mm-dd", "code": CodeValidationError})
			return
		}
		patient.DateOfBirth = &dob
	}

	if err := h.repo.Update(c.Request.Context(), patient); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}
