package scheduling

import (
	"time"

	"github.com/kindermind/scheduler/internal/clock"
	"github.com/kindermind/scheduler/internal/models"
)

// Monday March 2nd 2026; the fixtures below schedule onto the following
// Monday, March 9th.
var (
	testNow    = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	nextMonday = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
)

func fixedClock(t time.Time) clock.Clock {
	return clock.Func(func() time.Time { return t })
}

func mondayWindow(psychologistID uint, start, end string) *models.AvailabilityWindow {
	return &models.AvailabilityWindow{
		PsychologistID: psychologistID,
		DayOfWeek:      1,
		StartTime:      start,
		EndTime:        end,
		IsRecurring:    true,
	}
}

// seedActors loads a bookable psychologist, a parent and their child.
func seedActors(repo *fakeRepository) {
	repo.addPsychologist(models.Psychologist{
		ID:                        1,
		Name:                      "Dr. Elena Vasquez",
		Email:                     "elena@example.com",
		OffersOnlineSessions:      true,
		OffersInitialConsultation: true,
		OfficeAddress:             "12 Rosedale Ave, Suite 4",
		IsVerified:                true,
	})
	repo.addParent(models.Parent{ID: 1, Name: "Sam Porter", Email: "sam@example.com"})
	repo.addChild(models.Child{ID: 1, ParentID: 1, Name: "Riley"})
}

// seedSlots adds free hourly slots on nextMonday at the given starts.
func seedSlots(repo *fakeRepository, psychologistID uint, starts ...string) []models.AppointmentSlot {
	out := make([]models.AppointmentSlot, 0, len(starts))
	for _, start := range starts {
		end := addHour(start)
		out = append(out, repo.addSlot(models.AppointmentSlot{
			PsychologistID: psychologistID,
			SlotDate:       nextMonday,
			StartTime:      start,
			EndTime:        end,
		}))
	}
	return out
}

func addHour(hm string) string {
	t, _ := time.Parse("15:04", hm)
	return t.Add(time.Hour).Format("15:04")
}
