package scheduling

import (
	"context"

	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// AVAILABILITY WINDOW EDITING
// ======================================================

// WindowEditor owns the create/edit flow of availability windows:
// invariant validation, overlap rejection, and the explicit slot
// generation / regeneration that follows a successful mutation.
type WindowEditor struct {
	repo        domain.Repository
	gen         *SlotGenerator
	regen       *SlotRegenerator
	clock       clock.Clock
	horizonDays int
}

func NewWindowEditor(
	repo domain.Repository,
	gen *SlotGenerator,
	regen *SlotRegenerator,
	clk clock.Clock,
	horizonDays int,
) *WindowEditor {
	return &WindowEditor{
		repo:        repo,
		gen:         gen,
		regen:       regen,
		clock:       clk,
		horizonDays: horizonDays,
	}
}

// Create validates the window, rejects overlap with the psychologist's
// existing windows, stores it and generates its slots over the standing
// horizon. Returns the stored window and the number of slots created.
func (uc *WindowEditor) Create(
	ctx context.Context,
	w *models.AvailabilityWindow,
) (*models.AvailabilityWindow, int, error) {

	now := uc.clock.Now()

	if err := availability.Validate(w, now); err != nil {
		return nil, 0, err
	}

	if _, err := uc.repo.GetPsychologist(ctx, w.PsychologistID); err != nil {
		return nil, 0, schederr.New(schederr.KindInvalidWindow, "psychologist not found")
	}

	existing, err := uc.repo.ListWindows(ctx, w.PsychologistID)
	if err != nil {
		return nil, 0, err
	}
	for i := range existing {
		if availability.Overlaps(w, &existing[i]) {
			return nil, 0, schederr.New(
				schederr.KindAvailabilityConflict,
				"window overlaps an existing availability window",
			)
		}
	}

	if err := uc.repo.CreateWindow(ctx, w); err != nil {
		return nil, 0, err
	}

	from := availability.DateOnly(now)
	to := from.AddDate(0, 0, uc.horizonDays)

	created, err := uc.gen.Execute(ctx, w, from, to)
	if err != nil {
		return nil, 0, err
	}

	return w, len(created), nil
}

// List returns the psychologist's windows ordered by weekday and start.
func (uc *WindowEditor) List(ctx context.Context, psychologistID uint) ([]models.AvailabilityWindow, error) {
	windows, err := uc.repo.ListWindows(ctx, psychologistID)
	if err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	return windows, nil
}

// Update applies a new shape to an existing window and reconciles its
// slots via the regenerator. Booked slots falling outside the new shape
// are preserved; their appointments stay valid.
func (uc *WindowEditor) Update(
	ctx context.Context,
	psychologistID uint,
	windowID uint,
	apply func(*models.AvailabilityWindow),
) (*models.AvailabilityWindow, *RegenerationResult, error) {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		return nil, nil, schederr.New(schederr.KindInvalidWindow, "availability window not found")
	}
	if w.PsychologistID != psychologistID {
		return nil, nil, schederr.New(schederr.KindAccessDenied, "window belongs to another psychologist")
	}

	old := *w
	apply(w)
	w.ID = old.ID
	w.PsychologistID = old.PsychologistID

	if err := availability.Validate(w, uc.clock.Now()); err != nil {
		return nil, nil, err
	}

	existing, err := uc.repo.ListWindows(ctx, w.PsychologistID)
	if err != nil {
		return nil, nil, err
	}
	for i := range existing {
		if existing[i].ID == w.ID {
			continue
		}
		if availability.Overlaps(w, &existing[i]) {
			return nil, nil, schederr.New(
				schederr.KindAvailabilityConflict,
				"window overlaps an existing availability window",
			)
		}
	}

	if err := uc.repo.UpdateWindow(ctx, w); err != nil {
		return nil, nil, err
	}

	regen, err := uc.regen.OnWindowUpdated(ctx, &old, w)
	if err != nil {
		return nil, nil, err
	}

	return w, regen, nil
}
