package scheduling

import (
	"context"

	"github.com/kindermind/scheduler/internal/audit"
	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// QR SESSION VERIFICATION
// ======================================================

type VerifySession struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewVerifySession(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *VerifySession {
	return &VerifySession{repo: repo, clock: clk, audit: dispatcher}
}

// Execute confirms in-person attendance from a scanned QR code. The
// scanning psychologist must own the appointment the code resolves to.
func (uc *VerifySession) Execute(
	ctx context.Context,
	psychologistID uint,
	code string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByQRCode(ctx, code)
	if err != nil {
		return nil, schederr.New(schederr.KindQRVerification, "invalid verification code")
	}
	if ap.PsychologistID != psychologistID {
		return nil, schederr.New(schederr.KindAccessDenied, "appointment belongs to another psychologist")
	}

	if err := domain.VerifySession(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PsychologistID: ap.PsychologistID,
		Action:         "session_verified",
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
	})

	return ap, nil
}
