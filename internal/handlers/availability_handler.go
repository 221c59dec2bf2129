package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kindermind/scheduler/internal/httperr"
	"github.com/kindermind/scheduler/internal/httpresp"
	"github.com/kindermind/scheduler/internal/middleware"
	"github.com/kindermind/scheduler/internal/models"
	ucScheduling "github.com/kindermind/scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	editor  *ucScheduling.WindowEditor
	options *ucScheduling.BookingAvailability
}

func NewAvailabilityHandler(
	editor *ucScheduling.WindowEditor,
	options *ucScheduling.BookingAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		editor:  editor,
		options: options,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WindowRequest struct {
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	IsRecurring  *bool  `json:"is_recurring"`
	SpecificDate string `json:"specific_date"`
}

// ======================================================
// WINDOWS
// ======================================================

func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists manage availability.")
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid window payload.")
		return
	}

	w := &models.AvailabilityWindow{
		PsychologistID: actor.PsychologistID,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsRecurring:    true,
	}
	if req.IsRecurring != nil {
		w.IsRecurring = *req.IsRecurring
	}
	if req.SpecificDate != "" {
		d, err := parseDate(req.SpecificDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid specific date.")
			return
		}
		w.SpecificDate = &d
	}

	created, slotsCreated, err := h.editor.Create(c.Request.Context(), w)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"window":        created,
		"slots_created": slotsCreated,
	})
}

func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists manage availability.")
		return
	}

	windowID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_window_id", "Invalid window id.")
		return
	}

	var req WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid window payload.")
		return
	}

	updated, regen, err := h.editor.Update(c.Request.Context(), actor.PsychologistID, windowID, func(w *models.AvailabilityWindow) {
		w.DayOfWeek = req.DayOfWeek
		w.StartTime = req.StartTime
		w.EndTime = req.EndTime
		if req.IsRecurring != nil {
			w.IsRecurring = *req.IsRecurring
		}
		if req.SpecificDate != "" {
			if d, err := parseDate(req.SpecificDate); err == nil {
				w.SpecificDate = &d
			}
		}
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"window":       updated,
		"regeneration": regen,
	})
}

func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists manage availability.")
		return
	}

	windows, err := h.editor.List(c.Request.Context(), actor.PsychologistID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, windows)
}

// ======================================================
// BOOKING OPTIONS
// ======================================================

func (h *AvailabilityHandler) BookingOptions(c *gin.Context) {
	psychologistID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_psychologist_id", "Invalid psychologist id.")
		return
	}

	sessionType := c.Query("session_type")
	if sessionType == "" {
		httperr.BadRequest(c, "missing_session_type", "session_type is required.")
		return
	}

	from, to, ok := dateRangeQuery(c, 30)
	if !ok {
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range.")
		return
	}

	options, err := h.options.Execute(c.Request.Context(), psychologistID, sessionType, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, options)
}
