package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/dto"
	"github.com/kindermind/scheduler/internal/httperr"
	"github.com/kindermind/scheduler/internal/httpresp"
	"github.com/kindermind/scheduler/internal/middleware"
	ucScheduling "github.com/kindermind/scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book     *ucScheduling.BookAppointment
	cancel   *ucScheduling.CancelAppointment
	complete *ucScheduling.CompleteAppointment
	noShow   *ucScheduling.MarkNoShow
	start    *ucScheduling.StartSession
	verify   *ucScheduling.VerifySession
	reader   *ucScheduling.AppointmentReader
}

func NewAppointmentHandler(
	book *ucScheduling.BookAppointment,
	cancel *ucScheduling.CancelAppointment,
	complete *ucScheduling.CompleteAppointment,
	noShow *ucScheduling.MarkNoShow,
	start *ucScheduling.StartSession,
	verify *ucScheduling.VerifySession,
	reader *ucScheduling.AppointmentReader,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:     book,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
		start:    start,
		verify:   verify,
		reader:   reader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	ChildID        uint   `json:"child_id" binding:"required"`
	PsychologistID uint   `json:"psychologist_id" binding:"required"`
	SlotID         uint   `json:"slot_id" binding:"required"`
	SessionType    string `json:"session_type" binding:"required"`
	ParentNotes    string `json:"parent_notes"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type CompleteRequest struct {
	Notes string `json:"notes"`
}

type VerifySessionRequest struct {
	Code string `json:"code" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.ParentID == 0 {
		httperr.Forbidden(c, "parent_required", "Only parents book appointments.")
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucScheduling.BookingInput{
		ParentID:       actor.ParentID,
		ChildID:        req.ChildID,
		PsychologistID: req.PsychologistID,
		SlotID:         req.SlotID,
		SessionType:    req.SessionType,
		ParentNotes:    req.ParentNotes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.reader.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.reader.List(c.Request.Context(), middleware.ActorFrom(c), c.Query("scope"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(apps))
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists complete appointments.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req CompleteRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.complete.Execute(c.Request.Context(), actor.PsychologistID, id, req.Notes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists declare no-shows.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.noShow.Execute(c.Request.Context(), actor.PsychologistID, id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) StartSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) VerifySession(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.PsychologistID == 0 {
		httperr.Forbidden(c, "psychologist_required", "Only psychologists verify sessions.")
		return
	}

	var req VerifySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Verification code is required.")
		return
	}

	ap, err := h.verify.Execute(c.Request.Context(), actor.PsychologistID, req.Code)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
