package scheduling

import (
	"context"
	"testing"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

func optionsFor(repo *fakeRepository, sessionType domain.SessionType) ([]domain.BookingOption, error) {
	uc := NewBookingAvailability(repo, fixedClock(testNow))
	return uc.Execute(
		context.Background(),
		1,
		string(sessionType),
		testNow,
		testNow.AddDate(0, 0, 14),
	)
}

func TestBookingAvailability_Online(t *testing.T) {
	repo := newFakeRepository()
	seedActors(repo)
	slots := seedSlots(repo, 1, "09:00", "10:00", "13:00")

	options, err := optionsFor(repo, domain.OnlineMeeting)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(options) != 3 {
		t.Fatalf("got %d options, want 3", len(options))
	}
	first := options[0]
	if first.SlotID != slots[0].ID || first.StartTime != "09:00" || first.EndTime != "10:00" {
		t.Fatalf("first option = %+v", first)
	}
	if first.IsConsecutiveBlock || len(first.SlotIDs) != 0 {
		t.Fatalf("online option shaped as a block: %+v", first)
	}
	if first.Date != "2026-03-09" {
		t.Fatalf("option date = %s", first.Date)
	}
}

func TestBookingAvailability_ConsecutiveBlocks(t *testing.T) {
	repo := newFakeRepository()
	seedActors(repo)
	// 09-10-11 form one block; 13:00 is isolated.
	slots := seedSlots(repo, 1, "09:00", "10:00", "11:00", "13:00")

	options, err := optionsFor(repo, domain.InitialConsultation)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(options) != 1 {
		t.Fatalf("got %d options, want 1", len(options))
	}
	block := options[0]
	if !block.IsConsecutiveBlock {
		t.Fatal("option not marked as a block")
	}
	if block.StartTime != "09:00" || block.EndTime != "11:00" {
		t.Fatalf("block range %s-%s", block.StartTime, block.EndTime)
	}
	if len(block.SlotIDs) != 2 || block.SlotIDs[0] != slots[0].ID || block.SlotIDs[1] != slots[1].ID {
		t.Fatalf("block slot ids = %v", block.SlotIDs)
	}
}

func TestBookingAvailability_BookedSlotBreaksBlock(t *testing.T) {
	repo := newFakeRepository()
	seedActors(repo)
	slots := seedSlots(repo, 1, "09:00", "10:00", "11:00")

	taken := repo.slot(slots[1].ID)
	taken.IsBooked = true
	repo.addSlot(taken)

	options, err := optionsFor(repo, domain.InitialConsultation)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("got %d options across a booked gap, want 0", len(options))
	}
}

func TestBookingAvailability_SkipsPastSlots(t *testing.T) {
	repo := newFakeRepository()
	seedActors(repo)
	repo.addSlot(models.AppointmentSlot{
		PsychologistID: 1,
		SlotDate:       testNow,
		StartTime:      "07:00",
		EndTime:        "08:00",
	})
	seedSlots(repo, 1, "09:00")

	options, err := optionsFor(repo, domain.OnlineMeeting)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("got %d options, want only the future one", len(options))
	}
}

func TestBookingAvailability_RespectsOfferedServices(t *testing.T) {
	repo := newFakeRepository()
	repo.addPsychologist(models.Psychologist{
		ID: 1, Name: "Dr. Online Only", Email: "online@example.com",
		OffersOnlineSessions: true, IsVerified: true,
	})
	seedSlots(repo, 1, "09:00", "10:00")

	options, err := optionsFor(repo, domain.InitialConsultation)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("got %d in-person options from an online-only psychologist", len(options))
	}
}

func TestBookingAvailability_UnknownSessionType(t *testing.T) {
	repo := newFakeRepository()
	seedActors(repo)

	uc := NewBookingAvailability(repo, fixedClock(testNow))
	_, err := uc.Execute(context.Background(), 1, "Hypnotherapy", testNow, testNow.AddDate(0, 0, 7))
	if !schederr.Is(err, schederr.KindBooking) {
		t.Fatalf("got %v", err)
	}
}
