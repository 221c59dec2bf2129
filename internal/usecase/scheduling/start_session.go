package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// ONLINE SESSION START
// ======================================================

type StartSession struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewStartSession(repo domain.Repository, clk clock.Clock) *StartSession {
	return &StartSession{repo: repo, clock: clk}
}

// Execute moves an online appointment into progress. Either side of the
// appointment may start it once the clock is inside the allowed window.
func (uc *StartSession) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, schederr.New(schederr.KindAppointmentNotFound, "appointment not found")
	}
	if !actor.CanAccess(ap.ParentID, ap.PsychologistID) {
		return nil, schederr.New(schederr.KindAccessDenied, "appointment belongs to another account")
	}

	if err := domain.StartOnlineSession(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
