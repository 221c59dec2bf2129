package scheduling

import (
	"context"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
)

// findConsecutiveSlots walks hour by hour from the anchor slot and
// collects `count` back-to-back available slots on the same date. The
// result is all-or-nothing: any hole, booked slot, or missing slot
// yields nil with no error; callers decide how to report it. Repository
// failures propagate as-is.
func findConsecutiveSlots(
	ctx context.Context,
	repo domain.Repository,
	anchor *models.AppointmentSlot,
	count int,
) ([]models.AppointmentSlot, error) {

	block := []models.AppointmentSlot{*anchor}

	startHM := anchor.StartTime
	for len(block) < count {
		startHM = availability.AddHours(startHM, 1)
		if startHM == "" {
			return nil, nil
		}

		next, err := repo.GetSlotAt(ctx, anchor.PsychologistID, anchor.SlotDate, startHM)
		if err != nil {
			return nil, err
		}
		if next == nil || next.IsBooked {
			return nil, nil
		}
		block = append(block, *next)
	}

	return block, nil
}
