package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/audit"
	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// COMPLETION
// ======================================================

type CompleteAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCompleteAppointment(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, clock: clk, audit: dispatcher}
}

// Execute closes out the session. Only the psychologist completes an
// appointment; notes are appended to their record of the session.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	psychologistID uint,
	appointmentID uuid.UUID,
	notes string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, schederr.New(schederr.KindAppointmentNotFound, "appointment not found")
	}
	if ap.PsychologistID != psychologistID {
		return nil, schederr.New(schederr.KindAccessDenied, "appointment belongs to another psychologist")
	}

	if err := domain.Complete(ap, uc.clock.Now()); err != nil {
		return nil, err
	}
	if notes != "" {
		ap.PsychologistNotes = notes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PsychologistID: ap.PsychologistID,
		Action:         "appointment_completed",
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
	})

	return ap, nil
}
