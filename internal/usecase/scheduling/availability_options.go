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
// BOOKING AVAILABILITY
// ======================================================

// BookingAvailability turns raw free slots into the options a parent can
// actually book: every future slot for online sessions, and every pair
// of back-to-back free slots for in-person consultations.
type BookingAvailability struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewBookingAvailability(repo domain.Repository, clk clock.Clock) *BookingAvailability {
	return &BookingAvailability{repo: repo, clock: clk}
}

func (uc *BookingAvailability) Execute(
	ctx context.Context,
	psychologistID uint,
	sessionType string,
	dateFrom time.Time,
	dateTo time.Time,
) ([]domain.BookingOption, error) {

	st := domain.SessionType(sessionType)
	if !st.Valid() {
		return nil, schederr.Newf(schederr.KindBooking, "unknown session type %q", sessionType)
	}

	psy, err := uc.repo.GetPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, schederr.New(schederr.KindBooking, "psychologist not found")
	}
	if st == domain.OnlineMeeting && !psy.OffersOnlineSessions {
		return []domain.BookingOption{}, nil
	}
	if st == domain.InitialConsultation && !psy.OffersInitialConsultation {
		return []domain.BookingOption{}, nil
	}

	slots, err := uc.repo.ListAvailableSlots(ctx, psychologistID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	future := slots[:0:0]
	for _, s := range slots {
		start, err := availability.At(s.SlotDate, s.StartTime)
		if err != nil {
			continue
		}
		if start.After(now) {
			future = append(future, s)
		}
	}

	if st == domain.OnlineMeeting {
		return singleSlotOptions(future), nil
	}
	return consecutiveBlockOptions(future, st.SlotCount()), nil
}

func singleSlotOptions(slots []models.AppointmentSlot) []domain.BookingOption {
	options := make([]domain.BookingOption, 0, len(slots))
	for _, s := range slots {
		options = append(options, domain.BookingOption{
			SlotID:       s.ID,
			Date:         availability.DateOnly(s.SlotDate).Format("2006-01-02"),
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			SessionTypes: []string{string(domain.OnlineMeeting)},
		})
	}
	return options
}

// consecutiveBlockOptions pairs each slot with the `size-1` slots that
// follow it back to back on the same date. A slot already consumed as
// the tail of an earlier block does not anchor a new one.
func consecutiveBlockOptions(slots []models.AppointmentSlot, size int) []domain.BookingOption {

	type key struct {
		date  string
		start string
	}

	index := make(map[key]*models.AppointmentSlot, len(slots))
	for i := range slots {
		s := &slots[i]
		index[key{availability.DateOnly(s.SlotDate).Format("2006-01-02"), s.StartTime}] = s
	}

	consumed := make(map[uint]bool)
	options := []domain.BookingOption{}

	for i := range slots {
		anchor := &slots[i]
		if consumed[anchor.ID] {
			continue
		}

		date := availability.DateOnly(anchor.SlotDate).Format("2006-01-02")

		block := []*models.AppointmentSlot{anchor}
		startHM := anchor.StartTime
		for len(block) < size {
			startHM = availability.AddHours(startHM, 1)
			next, ok := index[key{date, startHM}]
			if !ok || consumed[next.ID] {
				break
			}
			block = append(block, next)
		}
		if len(block) < size {
			continue
		}

		ids := make([]uint, len(block))
		for j, s := range block {
			ids[j] = s.ID
			consumed[s.ID] = true
		}

		options = append(options, domain.BookingOption{
			SlotID:             anchor.ID,
			Date:               date,
			StartTime:          anchor.StartTime,
			EndTime:            block[len(block)-1].EndTime,
			IsConsecutiveBlock: true,
			SlotIDs:            ids,
			SessionTypes:       []string{string(domain.InitialConsultation)},
		})
	}

	return options
}
