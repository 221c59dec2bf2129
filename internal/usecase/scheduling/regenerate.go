package scheduling

import (
	"context"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
)

// ======================================================
// SLOT REGENERATOR
// ======================================================

type RegenerationResult struct {
	WindowID        uint `json:"availability_window_id"`
	DeletedUnbooked int  `json:"deleted_unbooked_slots"`
	OrphanedBooked  int  `json:"orphaned_booked_slots"`
	SlotsCreated    int  `json:"new_slots_created"`
}

// SlotRegenerator reconciles a window's slots after its shape changed.
// It is an explicit call the caller makes after a successful window
// mutation, never a hidden persistence hook.
type SlotRegenerator struct {
	repo        domain.Repository
	clock       clock.Clock
	horizonDays int
}

func NewSlotRegenerator(repo domain.Repository, clk clock.Clock, horizonDays int) *SlotRegenerator {
	return &SlotRegenerator{repo: repo, clock: clk, horizonDays: horizonDays}
}

// OnWindowUpdated brings the window's slots in line with its new shape
// over the standing generation horizon:
//   - unbooked slots outside the new shape are deleted,
//   - booked slots outside it are preserved as orphans (window link
//     cleared, booking and appointment untouched),
//   - uncovered portions of the new shape are generated.
//
// Everything runs in one transaction; old is kept for the audit trail.
func (uc *SlotRegenerator) OnWindowUpdated(
	ctx context.Context,
	old *models.AvailabilityWindow,
	updated *models.AvailabilityWindow,
) (*RegenerationResult, error) {

	now := uc.clock.Now()
	from := availability.DateOnly(now)
	to := from.AddDate(0, 0, uc.horizonDays)

	result := &RegenerationResult{WindowID: updated.ID}

	err := uc.repo.InTransaction(ctx, func(tx domain.Repository) error {

		slots, err := tx.ListWindowSlots(ctx, updated.ID, from, to)
		if err != nil {
			return err
		}

		var toDelete, toDetach []uint
		for _, s := range slots {
			if availability.Covers(updated, s.SlotDate, s.StartTime, s.EndTime) {
				continue
			}
			if s.IsBooked {
				toDetach = append(toDetach, s.ID)
			} else {
				toDelete = append(toDelete, s.ID)
			}
		}

		if len(toDelete) > 0 {
			if err := tx.DeleteSlots(ctx, toDelete); err != nil {
				return err
			}
		}
		if len(toDetach) > 0 {
			if err := tx.DetachWindowSlots(ctx, toDetach); err != nil {
				return err
			}
		}

		created, err := generateSlots(ctx, tx, now, updated, from, to)
		if err != nil {
			return err
		}

		result.DeletedUnbooked = len(toDelete)
		result.OrphanedBooked = len(toDetach)
		result.SlotsCreated = len(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
