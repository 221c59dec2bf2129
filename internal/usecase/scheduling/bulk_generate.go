package scheduling

import (
	"context"
	"time"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
)

// ======================================================
// BULK GENERATION
// ======================================================

type WindowGeneration struct {
	WindowID     uint   `json:"availability_window_id"`
	SlotsCreated int    `json:"slots_created"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

type BulkGenerateResult struct {
	PsychologistID    uint               `json:"psychologist_id"`
	DateFrom          time.Time          `json:"date_from"`
	DateTo            time.Time          `json:"date_to"`
	TotalSlotsCreated int                `json:"total_slots_created"`
	WindowsProcessed  int                `json:"windows_processed"`
	Windows           []WindowGeneration `json:"results"`
}

type BulkSlotGenerator struct {
	repo domain.Repository
	gen  *SlotGenerator
}

func NewBulkSlotGenerator(repo domain.Repository, gen *SlotGenerator) *BulkSlotGenerator {
	return &BulkSlotGenerator{repo: repo, gen: gen}
}

// Execute generates slots for every window of the psychologist over the
// range. A window that fails generation is reported in its result entry
// and does not stop the remaining windows.
func (uc *BulkSlotGenerator) Execute(
	ctx context.Context,
	psychologistID uint,
	dateFrom time.Time,
	dateTo time.Time,
) (*BulkGenerateResult, error) {

	windows, err := uc.repo.ListWindows(ctx, psychologistID)
	if err != nil {
		return nil, err
	}

	result := &BulkGenerateResult{
		PsychologistID: psychologistID,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
	}

	for i := range windows {
		w := windows[i]

		created, err := uc.gen.Execute(ctx, &w, dateFrom, dateTo)
		entry := WindowGeneration{
			WindowID:     w.ID,
			SlotsCreated: len(created),
			Success:      err == nil,
		}
		if err != nil {
			entry.Error = err.Error()
		}

		result.TotalSlotsCreated += len(created)
		result.Windows = append(result.Windows, entry)
	}

	result.WindowsProcessed = len(result.Windows)
	return result, nil
}
