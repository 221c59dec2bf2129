package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindermind/scheduler/internal/httperr"
	"github.com/kindermind/scheduler/internal/httpresp"
	"github.com/kindermind/scheduler/internal/middleware"
	ucScheduling "github.com/kindermind/scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type SlotsHandler struct {
	bulk    *ucScheduling.BulkSlotGenerator
	cleanup *ucScheduling.SlotCleanup
	reader  *ucScheduling.AppointmentReader

	retentionDays int
}

func NewSlotsHandler(
	bulk *ucScheduling.BulkSlotGenerator,
	cleanup *ucScheduling.SlotCleanup,
	reader *ucScheduling.AppointmentReader,
	retentionDays int,
) *SlotsHandler {
	return &SlotsHandler{
		bulk:          bulk,
		cleanup:       cleanup,
		reader:        reader,
		retentionDays: retentionDays,
	}
}

// ======================================================
// GENERATE
// ======================================================

func (h *SlotsHandler) Generate(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists generate slots.")
		return
	}

	from, to, ok := dateRangeQuery(c, 90)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range.")
		return
	}

	result, err := h.bulk.Execute(c.Request.Context(), actor.PsychologistID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// LIST
// ======================================================

func (h *SlotsHandler) ListAvailable(c *gin.Context) {
	psychologistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_psychologist_id", "Invalid psychologist id.")
		return
	}

	from, to, ok := dateRangeQuery(c, 30)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range.")
		return
	}

	slots, err := h.reader.ListSlots(c.Request.Context(), psychologistID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CLEANUP
// ======================================================

func (h *SlotsHandler) Cleanup(c *gin.Context) {
	daysPast := h.retentionDays
	if s := c.Query("days_past"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_days_past", "days_past must be a non-negative integer.")
			return
		}
		daysPast = n
	}

	deleted, err := h.cleanup.Execute(c.Request.Context(), daysPast)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"deleted_slots": deleted,
		"days_past":     daysPast,
	})
}
