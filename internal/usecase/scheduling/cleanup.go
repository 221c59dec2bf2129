package scheduling

import (
	"context"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
)

// ======================================================
// SLOT CLEANUP
// ======================================================

type SlotCleanup struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewSlotCleanup(repo domain.Repository, clk clock.Clock) *SlotCleanup {
	return &SlotCleanup{repo: repo, clock: clk}
}

// Execute purges unbooked slots dated before today minus daysPast and
// returns the exact number deleted. Booked slots survive regardless of
// age; their appointment is the durable history. Safe to re-run and to
// run concurrently with bookings.
func (uc *SlotCleanup) Execute(ctx context.Context, daysPast int) (int64, error) {
	today := availability.DateOnly(uc.clock.Now())
	cutoff := today.AddDate(0, 0, -daysPast)

	return uc.repo.DeleteUnbookedSlotsBefore(ctx, cutoff)
}
