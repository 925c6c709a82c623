package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hospital-management-backend/internal/billing"
	"hospital-management-backend/internal/documents"
	"hospital-management-backend/internal/repository"
)

type BillingHandler struct {
	service     *billing.Service
	billRepo    *repository.BillRepository
	patientRepo *repository.PatientRepository
}

func NewBillingHandler(s *billing.Service, billRepo *repository.BillRepository, patientRepo *repository.PatientRepository) *BillingHandler {
	return &BillingHandler{service: s, billRepo: billRepo, patientRepo: patientRepo}
}

type billItemPayload struct {
	ItemType    string          `json:"item_type"`
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func toItemInputs(payloads []billItemPayload) []billing.ItemInput {
	items := make([]billing.ItemInput, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, billing.ItemInput{
			ItemType:    p.ItemType,
			Description: p.Description,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
		})
	}
	return items
}

func (h *BillingHandler) CreateBill(c *gin.Context) {
	var payload struct {
		PatientID string            `json:"patient_id" binding:"required"`
		Items     []billItemPayload `json:"items"`
		Notes     string            `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "code": CodeValidationError})
		return
	}

	patientID, err := uuid.Parse(payload.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), billing.CreateBillRequest{
		PatientID: patientID,
		CreatedBy: actorID(c),
		Items:     toItemInputs(payload.Items),
		Notes:     payload.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "bill created", "bill": bill})
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

func (h *BillingHandler) ListBills(c *gin.Context) {
	filter := repository.BillFilter{Status: c.Query("status")}

	if p := c.Query("patient_id"); p != "" {
		patientID, err := uuid.Parse(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID", "code": CodeValidationError})
			return
		}
		filter.PatientID = &patientID
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	bills, total, err := h.service.ListBills(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": bills, "total": total})
}

func (h *BillingHandler) ReplaceItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	var payload struct {
		Items []billItemPayload `json:"items"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "code": CodeValidationError})
		return
	}

	bill, err := h.service.ReplaceItems(c.Request.Context(), id, toItemInputs(payload.Items), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "items replaced", "bill": bill})
}

func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	var payload struct {
		Amount         decimal.Decimal `json:"amount" binding:"required"`
		PaymentMethod  string          `json:"payment_method" binding:"required"`
		Notes          string          `json:"notes"`
		IdempotencyKey string          `json:"idempotency_key"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "code": CodeValidationError})
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), billing.RecordPaymentRequest{
		BillID:         id,
		Amount:         payload.Amount,
		Method:         payload.PaymentMethod,
		ReceivedBy:     actorID(c),
		Notes:          payload.Notes,
		IdempotencyKey: payload.IdempotencyKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "payment": payment})
}

func (h *BillingHandler) CancelBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	if err := h.service.CancelBill(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bill cancelled"})
}

// Receipt renders the bill aggregate as an HTML invoice/receipt.
func (h *BillingHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	bill, err := h.service.GetBill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	patient, err := h.patientRepo.GetByID(c.Request.Context(), bill.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Render into a buffer first so a template failure can still produce a
	// clean 500 instead of a truncated 200.
	var buf bytes.Buffer
	if err := documents.RenderReceipt(&buf, documents.ReceiptData{Bill: bill, Patient: patient}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render receipt", "code": CodeStorageError})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *BillingHandler) AuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill ID", "code": CodeValidationError})
		return
	}

	entries, err := h.billRepo.AuditTrail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *BillingHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
