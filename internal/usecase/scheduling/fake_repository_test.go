package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/domain/availability"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

var errNotFound = errors.New("not found")

// fakeRepository is an in-memory, mutex-guarded stand-in for the GORM
// repository. MarkSlotsBooked keeps the conditional-update semantics of
// the real implementation, so booking races stay observable under test.
type fakeRepository struct {
	mu sync.Mutex

	psychologists map[uint]models.Psychologist
	parents       map[uint]models.Parent
	children      map[uint]models.Child
	windows       map[uint]models.AvailabilityWindow
	slots         map[uint]models.AppointmentSlot
	appointments  map[uuid.UUID]models.Appointment

	nextWindowID uint
	nextSlotID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		psychologists: map[uint]models.Psychologist{},
		parents:       map[uint]models.Parent{},
		children:      map[uint]models.Child{},
		windows:       map[uint]models.AvailabilityWindow{},
		slots:         map[uint]models.AppointmentSlot{},
		appointments:  map[uuid.UUID]models.Appointment{},
	}
}

// -------- Seeding helpers --------

func (f *fakeRepository) addPsychologist(p models.Psychologist) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.psychologists[p.ID] = p
}

func (f *fakeRepository) addParent(p models.Parent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parents[p.ID] = p
}

func (f *fakeRepository) addChild(c models.Child) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.children[c.ID] = c
}

func (f *fakeRepository) addAppointment(ap models.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments[ap.ID] = ap
}

func (f *fakeRepository) addSlot(s models.AppointmentSlot) models.AppointmentSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == 0 {
		f.nextSlotID++
		s.ID = f.nextSlotID
	} else if s.ID > f.nextSlotID {
		f.nextSlotID = s.ID
	}
	s.SlotDate = availability.DateOnly(s.SlotDate)
	f.slots[s.ID] = s
	return s
}

func (f *fakeRepository) slot(id uint) models.AppointmentSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id]
}

func (f *fakeRepository) appointment(id uuid.UUID) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appointments[id]
}

func (f *fakeRepository) slotCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slots)
}

// -------- Actors --------

func (f *fakeRepository) GetPsychologist(_ context.Context, id uint) (*models.Psychologist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.psychologists[id]
	if !ok {
		return nil, errNotFound
	}
	return &p, nil
}

func (f *fakeRepository) GetParent(_ context.Context, id uint) (*models.Parent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.parents[id]
	if !ok {
		return nil, errNotFound
	}
	return &p, nil
}

func (f *fakeRepository) GetChild(_ context.Context, id uint) (*models.Child, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.children[id]
	if !ok {
		return nil, errNotFound
	}
	return &c, nil
}

// -------- Availability windows --------

func (f *fakeRepository) CreateWindow(_ context.Context, w *models.AvailabilityWindow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w.ID == 0 {
		f.nextWindowID++
		w.ID = f.nextWindowID
	} else if w.ID > f.nextWindowID {
		f.nextWindowID = w.ID
	}
	f.windows[w.ID] = *w
	return nil
}

func (f *fakeRepository) UpdateWindow(_ context.Context, w *models.AvailabilityWindow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.windows[w.ID]; !ok {
		return errNotFound
	}
	f.windows[w.ID] = *w
	return nil
}

func (f *fakeRepository) GetWindow(_ context.Context, id uint) (*models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok {
		return nil, errNotFound
	}
	return &w, nil
}

func (f *fakeRepository) ListWindows(_ context.Context, psychologistID uint) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.PsychologistID == psychologistID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -------- Slots --------

func (f *fakeRepository) CreateSlot(_ context.Context, s *models.AppointmentSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSlotID++
	s.ID = f.nextSlotID
	s.SlotDate = availability.DateOnly(s.SlotDate)
	f.slots[s.ID] = *s
	return nil
}

func (f *fakeRepository) SlotExists(_ context.Context, psychologistID uint, slotDate time.Time, startHM string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.PsychologistID == psychologistID &&
			availability.SameDate(s.SlotDate, slotDate) &&
			s.StartTime == startHM {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) GetSlot(_ context.Context, id uint) (*models.AppointmentSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, errNotFound
	}
	return &s, nil
}

func (f *fakeRepository) GetSlotAt(_ context.Context, psychologistID uint, slotDate time.Time, startHM string) (*models.AppointmentSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.PsychologistID == psychologistID &&
			availability.SameDate(s.SlotDate, slotDate) &&
			s.StartTime == startHM {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) ListAvailableSlots(_ context.Context, psychologistID uint, dateFrom, dateTo time.Time) ([]models.AppointmentSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AppointmentSlot
	for _, s := range f.slots {
		if s.PsychologistID != psychologistID || s.IsBooked {
			continue
		}
		if s.SlotDate.Before(availability.DateOnly(dateFrom)) || s.SlotDate.After(availability.DateOnly(dateTo)) {
			continue
		}
		out = append(out, s)
	}
	sortSlots(out)
	return out, nil
}

func (f *fakeRepository) ListWindowSlots(_ context.Context, windowID uint, dateFrom, dateTo time.Time) ([]models.AppointmentSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AppointmentSlot
	for _, s := range f.slots {
		if s.AvailabilityWindowID == nil || *s.AvailabilityWindowID != windowID {
			continue
		}
		if s.SlotDate.Before(availability.DateOnly(dateFrom)) || s.SlotDate.After(availability.DateOnly(dateTo)) {
			continue
		}
		out = append(out, s)
	}
	sortSlots(out)
	return out, nil
}

func (f *fakeRepository) MarkSlotsBooked(_ context.Context, slotIDs []uint, appointmentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range slotIDs {
		s, ok := f.slots[id]
		if !ok || s.IsBooked {
			return schederr.New(schederr.KindSlotNotAvailable, "slot was booked by someone else")
		}
	}
	for _, id := range slotIDs {
		s := f.slots[id]
		s.IsBooked = true
		apID := appointmentID
		s.AppointmentID = &apID
		f.slots[id] = s
	}
	return nil
}

func (f *fakeRepository) ReleaseAppointmentSlots(_ context.Context, appointmentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.slots {
		if s.AppointmentID != nil && *s.AppointmentID == appointmentID {
			s.IsBooked = false
			s.AppointmentID = nil
			f.slots[id] = s
		}
	}
	return nil
}

func (f *fakeRepository) DeleteSlots(_ context.Context, slotIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range slotIDs {
		delete(f.slots, id)
	}
	return nil
}

func (f *fakeRepository) DetachWindowSlots(_ context.Context, slotIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range slotIDs {
		if s, ok := f.slots[id]; ok {
			s.AvailabilityWindowID = nil
			f.slots[id] = s
		}
	}
	return nil
}

func (f *fakeRepository) DeleteUnbookedSlotsBefore(_ context.Context, cutoffDate time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, s := range f.slots {
		if !s.IsBooked && s.SlotDate.Before(availability.DateOnly(cutoffDate)) {
			delete(f.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

// -------- Appointments --------

func (f *fakeRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepository) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return &ap, nil
}

func (f *fakeRepository) GetAppointmentByQRCode(_ context.Context, code string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.QRCode != nil && *ap.QRCode == code {
			return &ap, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[ap.ID]; !ok {
		return errNotFound
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepository) QRCodeInUse(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ap := range f.appointments {
		if ap.QRCode != nil && *ap.QRCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) ListAppointmentsForPsychologist(_ context.Context, psychologistID uint, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.PsychologistID == psychologistID &&
			!ap.ScheduledStartTime.Before(from) && ap.ScheduledStartTime.Before(to) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStartTime.Before(out[j].ScheduledStartTime) })
	return out, nil
}

func (f *fakeRepository) ListAppointmentsForParent(_ context.Context, parentID uint, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ParentID == parentID &&
			!ap.ScheduledStartTime.Before(from) && ap.ScheduledStartTime.Before(to) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStartTime.Before(out[j].ScheduledStartTime) })
	return out, nil
}

// -------- Transactions --------

// InTransaction runs fn against the same fake. Rollback is not modeled;
// tests assert on the error paths before any partial write happens.
func (f *fakeRepository) InTransaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func sortSlots(slots []models.AppointmentSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !availability.SameDate(slots[i].SlotDate, slots[j].SlotDate) {
			return slots[i].SlotDate.Before(slots[j].SlotDate)
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

// Compile-time check
var _ domain.Repository = (*fakeRepository)(nil)
