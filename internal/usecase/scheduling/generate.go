package scheduling

import (
	"context"
	"time"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// SLOT GENERATOR
// ======================================================

type SlotGenerator struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewSlotGenerator(repo domain.Repository, clk clock.Clock) *SlotGenerator {
	return &SlotGenerator{repo: repo, clock: clk}
}

// Execute materializes hourly slots for every date in [dateFrom, dateTo]
// the window applies to. Existing (psychologist, date, start) rows are
// skipped, so re-running over the same range creates nothing. Only
// newly created slots are returned.
func (uc *SlotGenerator) Execute(
	ctx context.Context,
	w *models.AvailabilityWindow,
	dateFrom time.Time,
	dateTo time.Time,
) ([]models.AppointmentSlot, error) {
	return generateSlots(ctx, uc.repo, uc.clock.Now(), w, dateFrom, dateTo)
}

// generateSlots is shared with the regenerator, which runs it against a
// transactional repository view.
func generateSlots(
	ctx context.Context,
	repo domain.Repository,
	now time.Time,
	w *models.AvailabilityWindow,
	dateFrom time.Time,
	dateTo time.Time,
) ([]models.AppointmentSlot, error) {

	if w.EndTime <= w.StartTime {
		return nil, schederr.New(
			schederr.KindSlotGeneration,
			"availability window has an invalid time range: end time must be after start time",
		)
	}

	starts := availability.SlotStartTimes(w)

	var created []models.AppointmentSlot

	from := availability.DateOnly(dateFrom)
	to := availability.DateOnly(dateTo)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !availability.AppliesTo(w, day) {
			continue
		}

		for _, startHM := range starts {
			slotStart, err := availability.At(day, startHM)
			if err != nil {
				return nil, schederr.Newf(schederr.KindSlotGeneration, "malformed slot time %q", startHM)
			}

			// Never emit slots that already lie in the past.
			if !slotStart.After(now) {
				continue
			}

			exists, err := repo.SlotExists(ctx, w.PsychologistID, day, startHM)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}

			windowID := w.ID
			slot := models.AppointmentSlot{
				PsychologistID:       w.PsychologistID,
				AvailabilityWindowID: &windowID,
				SlotDate:             day,
				StartTime:            startHM,
				EndTime:              availability.AddHours(startHM, 1),
			}

			if err := repo.CreateSlot(ctx, &slot); err != nil {
				return nil, err
			}
			created = append(created, slot)
		}
	}

	return created, nil
}
