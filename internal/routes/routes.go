package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kindermind/scheduler/internal/audit"
	"github.com/kindermind/scheduler/internal/clock"
	"github.com/kindermind/scheduler/internal/config"
	"github.com/kindermind/scheduler/internal/handlers"
	infraRepo "github.com/kindermind/scheduler/internal/infra/repository"
	"github.com/kindermind/scheduler/internal/middleware"
	ucScheduling "github.com/kindermind/scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.IdentityMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	clk := clock.System{}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (SCHEDULING)
	// ======================================================
	slotGeneratorUC := ucScheduling.NewSlotGenerator(schedulingRepo, clk)

	slotRegeneratorUC := ucScheduling.NewSlotRegenerator(
		schedulingRepo,
		clk,
		cfg.GenerationDaysAhead,
	)

	windowEditorUC := ucScheduling.NewWindowEditor(
		schedulingRepo,
		slotGeneratorUC,
		slotRegeneratorUC,
		clk,
		cfg.GenerationDaysAhead,
	)

	bulkGeneratorUC := ucScheduling.NewBulkSlotGenerator(schedulingRepo, slotGeneratorUC)
	slotCleanupUC := ucScheduling.NewSlotCleanup(schedulingRepo, clk)

	bookingAvailabilityUC := ucScheduling.NewBookingAvailability(schedulingRepo, clk)

	bookAppointmentUC := ucScheduling.NewBookAppointment(
		schedulingRepo,
		clk,
		auditDispatcher,
	)

	cancelAppointmentUC := ucScheduling.NewCancelAppointment(
		schedulingRepo,
		clk,
		auditDispatcher,
	)

	completeAppointmentUC := ucScheduling.NewCompleteAppointment(
		schedulingRepo,
		clk,
		auditDispatcher,
	)

	markNoShowUC := ucScheduling.NewMarkNoShow(schedulingRepo, clk, auditDispatcher)
	startSessionUC := ucScheduling.NewStartSession(schedulingRepo, clk)
	verifySessionUC := ucScheduling.NewVerifySession(schedulingRepo, clk, auditDispatcher)

	appointmentReaderUC := ucScheduling.NewAppointmentReader(schedulingRepo, clk)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		windowEditorUC,
		bookingAvailabilityUC,
	)

	slotsHandler := handlers.NewSlotsHandler(
		bulkGeneratorUC,
		slotCleanupUC,
		appointmentReaderUC,
		cfg.SlotRetentionDays,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		markNoShowUC,
		startSessionUC,
		verifySessionUC,
		appointmentReaderUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC MARKETPLACE
		// ------------------------------
		api.GET("/psychologists/:id/slots", slotsHandler.ListAvailable)
		api.GET("/psychologists/:id/booking-options", availabilityHandler.BookingOptions)

		// ------------------------------
		// AVAILABILITY (PSYCHOLOGIST)
		// ------------------------------
		api.GET("/me/availability-windows", availabilityHandler.ListWindows)
		api.POST("/me/availability-windows", availabilityHandler.CreateWindow)
		api.PUT("/me/availability-windows/:id", availabilityHandler.UpdateWindow)
		api.POST("/me/slots/generate", slotsHandler.Generate)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Book)
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
		api.PATCH("/appointments/:id/start", appointmentHandler.StartSession)
		api.POST("/sessions/verify", appointmentHandler.VerifySession)

		// ------------------------------
		// OPERATIONS
		// ------------------------------
		api.POST("/admin/slots/cleanup", slotsHandler.Cleanup)
		api.GET("/me/audit-logs", auditLogsHandler.List)
	}
}
