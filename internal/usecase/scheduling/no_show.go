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
// NO-SHOW
// ======================================================

type MarkNoShow struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewMarkNoShow(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *MarkNoShow {
	return &MarkNoShow{repo: repo, clock: clk, audit: dispatcher}
}

// Execute declares the appointment a no-show. Only the psychologist side
// of the appointment may do this; the slots are released so the hours
// can be rebooked for other families.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	psychologistID uint,
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
		if ap.PsychologistID != psychologistID {
			return schederr.New(schederr.KindAccessDenied, "appointment belongs to another psychologist")
		}

		if err := domain.MarkNoShow(ap, reason, now); err != nil {
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
		Action:         "appointment_no_show",
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
		Metadata:       map[string]any{"reason": reason},
	})

	return ap, nil
}
