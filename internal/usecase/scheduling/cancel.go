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
// CANCELLATION
// ======================================================

type CancelAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancelAppointment(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *CancelAppointment {
	return &CancelAppointment{repo: repo, clock: clk, audit: dispatcher}
}

// Execute cancels the appointment on behalf of the actor and releases
// its slots back to the pool, both inside one transaction.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	now := uc.clock.Now()

	var ap *models.Appointment

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return schederr.New(schederr.KindAppointmentNotFound, "appointment not found")
		}
		if !actor.CanAccess(ap.ParentID, ap.PsychologistID) {
			return schederr.New(schederr.KindAccessDenied, "appointment belongs to another account")
		}

		if err := domain.Cancel(ap, reason, now); err != nil {
			return err
		}

		if err := tx.ReleaseAppointmentSlots(ctx, ap.ID); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PsychologistID: ap.PsychologistID,
		ParentID:       &ap.ParentID,
		Action:         "appointment_cancelled",
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
		Metadata:       map[string]any{"reason": reason},
	})

	return ap, nil
}
