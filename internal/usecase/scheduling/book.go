package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/audit"
	"github.com/kindermind/scheduler/internal/clock"
	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ======================================================
// BOOKING
// ======================================================

type BookingInput struct {
	ParentID       uint
	ChildID        uint
	PsychologistID uint
	SlotID         uint
	SessionType    string
	ParentNotes    string
}

// BookAppointment is the single entry point for creating appointments.
// Slot claiming, appointment creation and payment confirmation happen in
// one transaction, so two parents racing for the same slot cannot both
// succeed.
type BookAppointment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewBookAppointment(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *BookAppointment {
	return &BookAppointment{repo: repo, clock: clk, audit: dispatcher}
}

func (uc *BookAppointment) Execute(ctx context.Context, in BookingInput) (*models.Appointment, error) {

	sessionType := domain.SessionType(in.SessionType)
	if !sessionType.Valid() {
		return nil, schederr.Newf(schederr.KindBooking, "unknown session type %q", in.SessionType)
	}

	parent, err := uc.repo.GetParent(ctx, in.ParentID)
	if err != nil {
		return nil, schederr.New(schederr.KindBooking, "parent not found")
	}

	child, err := uc.repo.GetChild(ctx, in.ChildID)
	if err != nil {
		return nil, schederr.New(schederr.KindBooking, "child not found")
	}
	if child.ParentID != parent.ID {
		return nil, schederr.New(schederr.KindBooking, "child does not belong to this parent")
	}

	psy, err := uc.repo.GetPsychologist(ctx, in.PsychologistID)
	if err != nil {
		return nil, schederr.New(schederr.KindBooking, "psychologist not found")
	}
	if !psy.IsMarketplaceVisible() {
		return nil, schederr.New(schederr.KindBooking, "psychologist is not accepting bookings")
	}

	switch sessionType {
	case domain.OnlineMeeting:
		if !psy.OffersOnlineSessions {
			return nil, schederr.New(schederr.KindBooking, "psychologist does not offer online sessions")
		}
	case domain.InitialConsultation:
		if !psy.OffersInitialConsultation {
			return nil, schederr.New(schederr.KindBooking, "psychologist does not offer initial consultations")
		}
		if psy.OfficeAddress == "" {
			return nil, schederr.New(schederr.KindBooking, "psychologist has no office address for in-person sessions")
		}
	}

	now := uc.clock.Now()

	var ap *models.Appointment

	err = uc.repo.InTransaction(ctx, func(tx domain.Repository) error {

		anchor, err := tx.GetSlot(ctx, in.SlotID)
		if err != nil {
			return schederr.New(schederr.KindSlotNotAvailable, "slot not found")
		}
		if anchor.PsychologistID != psy.ID {
			return schederr.New(schederr.KindSlotNotAvailable, "slot does not belong to this psychologist")
		}
		if anchor.IsBooked {
			return schederr.New(schederr.KindSlotNotAvailable, "slot is already booked")
		}

		slotStart, err := availability.At(anchor.SlotDate, anchor.StartTime)
		if err != nil {
			return schederr.Newf(schederr.KindBooking, "malformed slot time %q", anchor.StartTime)
		}
		if !slotStart.After(now) {
			return schederr.New(schederr.KindSlotNotAvailable, "slot is in the past")
		}

		block, err := findConsecutiveSlots(ctx, tx, anchor, sessionType.SlotCount())
		if err != nil {
			return err
		}
		if block == nil {
			return schederr.Newf(
				schederr.KindInsufficientConsecutiveSlots,
				"%s requires %d consecutive available slots starting at %s",
				sessionType, sessionType.SlotCount(), anchor.StartTime,
			)
		}

		last := block[len(block)-1]
		scheduledEnd, err := availability.At(last.SlotDate, last.EndTime)
		if err != nil {
			return schederr.Newf(schederr.KindBooking, "malformed slot time %q", last.EndTime)
		}

		ap = &models.Appointment{
			ID:                 uuid.New(),
			ChildID:            child.ID,
			PsychologistID:     psy.ID,
			ParentID:           parent.ID,
			SessionType:        string(sessionType),
			AppointmentStatus:  string(domain.InitialStatus()),
			PaymentStatus:      string(domain.PaymentPending),
			ScheduledStartTime: slotStart,
			ScheduledEndTime:   scheduledEnd,
			ParentNotes:        in.ParentNotes,
		}

		switch sessionType {
		case domain.OnlineMeeting:
			meetingID := "meeting_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
			ap.MeetingID = meetingID
			ap.MeetingLink = fmt.Sprintf("https://zoom.us/j/%s", meetingID)

		case domain.InitialConsultation:
			ap.MeetingAddress = psy.OfficeAddress

			code, err := uniqueQRCode(ctx, tx)
			if err != nil {
				return err
			}
			ap.QRCode = &code
		}

		slotIDs := make([]uint, len(block))
		for i, s := range block {
			slotIDs[i] = s.ID
		}
		if err := tx.MarkSlotsBooked(ctx, slotIDs, ap.ID); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		// Payment collection is not wired yet, so every booking is
		// confirmed on the spot.
		if err := domain.MarkScheduled(ap); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	parentID := parent.ID
	uc.audit.Dispatch(audit.Event{
		PsychologistID: psy.ID,
		ParentID:       &parentID,
		Action:         "appointment_booked",
		Entity:         "appointment",
		EntityID:       ap.ID.String(),
		Metadata: map[string]any{
			"session_type": ap.SessionType,
			"slot_id":      in.SlotID,
			"start":        ap.ScheduledStartTime,
		},
	})

	return ap, nil
}

// uniqueQRCode draws codes until one is free. Collisions on 16 hex
// characters are vanishingly rare, so this loop almost never iterates.
func uniqueQRCode(ctx context.Context, repo domain.Repository) (string, error) {
	for {
		code := domain.NewQRCode()
		inUse, err := repo.QRCodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
}
