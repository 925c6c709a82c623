package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-backend/internal/auth"
	"hospital-management-backend/internal/billing"
	handler "hospital-management-backend/internal/handlers"
	"hospital-management-backend/internal/repository"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	billRepo := repository.NewBillRepository(db)
	patientRepo := repository.NewPatientRepository(db)

	billingService := billing.NewService(billRepo, patientRepo)

	authHandler := handler.NewAuthHandler(db)
	patientHandler := handler.NewPatientHandler(patientRepo)
	appointmentHandler := handler.NewAppointmentHandler(db)
	clinicalHandler := handler.NewClinicalHandler(db)
	labHandler := handler.NewLabHandler(db)
	billingHandler := handler.NewBillingHandler(billingService, billRepo, patientRepo)

	api := r.Group("/api/v1")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(auth.Middleware())

	patients := protected.Group("/patients")
	patients.GET("", patientHandler.List)
	patients.GET("/:id", patientHandler.Get)
	patients.POST("", auth.Require(func(c auth.Capabilities) bool { return c.CanManagePatients }), patientHandler.Create)
	patients.PUT("/:id", auth.Require(func(c auth.Capabilities) bool { return c.CanManagePatients }), patientHandler.Update)
	patients.GET("/:id/encounters", clinicalHandler.ListEncounters)
	patients.GET("/:id/prescriptions", clinicalHandler.ListPrescriptions)

	appointments := protected.Group("/appointments")
	appointments.GET("", appointmentHandler.List)
	appointments.POST("", auth.Require(func(c auth.Capabilities) bool { return c.CanSchedule }), appointmentHandler.Create)
	appointments.PATCH("/:id/status", auth.Require(func(c auth.Capabilities) bool { return c.CanSchedule }), appointmentHandler.UpdateStatus)

	protected.POST("/encounters", auth.Require(func(c auth.Capabilities) bool { return c.CanRecordClinical }), clinicalHandler.CreateEncounter)
	protected.POST("/prescriptions", auth.Require(func(c auth.Capabilities) bool { return c.CanPrescribe }), clinicalHandler.CreatePrescription)

	labs := protected.Group("/lab-orders")
	labs.GET("", labHandler.List)
	labs.POST("", auth.Require(func(c auth.Capabilities) bool { return c.CanManageLabs }), labHandler.Create)
	labs.PATCH("/:id/result", auth.Require(func(c auth.Capabilities) bool { return c.CanManageLabs }), labHandler.RecordResult)

	bills := protected.Group("/bills")
	bills.GET("", billingHandler.ListBills)
	bills.GET("/:id", billingHandler.GetBill)
	bills.GET("/:id/receipt", billingHandler.Receipt)
	bills.GET("/:id/audit", auth.Require(func(c auth.Capabilities) bool { return c.CanViewReports }), billingHandler.AuditTrail)
	bills.POST("", auth.Require(func(c auth.Capabilities) bool { return c.CanCreateBill }), billingHandler.CreateBill)
	bills.PUT("/:id/items", auth.Require(func(c auth.Capabilities) bool { return c.CanEditBill }), billingHandler.ReplaceItems)
	bills.POST("/:id/payments", auth.Require(func(c auth.Capabilities) bool { return c.CanRecordPayment }), billingHandler.RecordPayment)
	bills.POST("/:id/cancel", auth.Require(func(c auth.Capabilities) bool { return c.CanCancelBill }), billingHandler.CancelBill)

	protected.GET("/billing/summary", auth.Require(func(c auth.Capabilities) bool { return c.CanViewReports }), billingHandler.Summary)
}
