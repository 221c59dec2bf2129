package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// APPOINTMENT QUERIES
// ======================================================

type AppointmentReader struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewAppointmentReader(repo domain.Repository, clk clock.Clock) *AppointmentReader {
	return &AppointmentReader{repo: repo, clock: clk}
}

// Get returns one appointment if the actor owns a side of it.
func (uc *AppointmentReader) Get(
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
	return ap, nil
}

// List returns the actor's appointments. scope narrows the range:
// "upcoming" keeps appointments starting from now on, "past" keeps the
// ones already started, anything else keeps both.
func (uc *AppointmentReader) List(
	ctx context.Context,
	actor domain.Actor,
	scope string,
) ([]models.Appointment, error) {

	now := uc.clock.Now()

	// A wide fixed range; the repository indexes scheduled_start_time.
	from := now.AddDate(-2, 0, 0)
	to := now.AddDate(2, 0, 0)

	switch scope {
	case "upcoming":
		from = now
	case "past":
		to = now
	}

	var (
		appointments []models.Appointment
		err          error
	)
	switch {
	case actor.ParentID != 0:
		appointments, err = uc.repo.ListAppointmentsForParent(ctx, actor.ParentID, from, to)
	case actor.PsychologistID != 0:
		appointments, err = uc.repo.ListAppointmentsForPsychologist(ctx, actor.PsychologistID, from, to)
	default:
		return nil, schederr.New(schederr.KindAccessDenied, "no account to list appointments for")
	}
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// ListSlots exposes a psychologist's free slots over a date range, for
// their own calendar views.
func (uc *AppointmentReader) ListSlots(
	ctx context.Context,
	psychologistID uint,
	dateFrom time.Time,
	dateTo time.Time,
) ([]models.AppointmentSlot, error) {

	slots, err := uc.repo.ListAvailableSlots(ctx, psychologistID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.AppointmentSlot{}
	}
	return slots, nil
}
