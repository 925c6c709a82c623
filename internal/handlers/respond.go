package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-management-backend/internal/auth"
	"hospital-management-backend/internal/billing"
)

// Stable error codes surfaced to the UI.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeOverpayment         = "OVERPAYMENT"
	CodeEditNotAllowed      = "EDIT_NOT_ALLOWED"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodeNotFound            = "RESOURCE_NOT_FOUND"
	CodeStorageError        = "STORAGE_ERROR"
)

// respondError maps the billing error taxonomy onto HTTP responses. Nothing
// is swallowed: storage errors surface as 500s with a generic body and a
// server-side log line.
func respondError(c *gin.Context, err error) {
	switch {
	case billing.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeValidationError})
	case errors.Is(err, billing.ErrOverpayment):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": CodeOverpayment})
	case errors.Is(err, billing.ErrEditNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": CodeEditNotAllowed})
	case errors.Is(err, billing.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": CodeDuplicateSubmission})
	case errors.Is(err, billing.ErrBillNotFound),
		errors.Is(err, billing.ErrPatientNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": CodeNotFound})
	default:
		log.Printf("storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": CodeStorageError})
	}
}

// actorID returns the authenticated staff id, or uuid.Nil when the route is
// unauthenticated (tests, health checks).
func actorID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(auth.ContextUserID))
	if err != nil {
		return uuid.Nil
	}
	return id
}
