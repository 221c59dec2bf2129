package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/models"
)

// Repository is the persistence boundary of the scheduling core. The
// GORM implementation lives in internal/infra/repository; tests run
// against an in-memory fake.
type Repository interface {
	// -------- Actors --------
	GetPsychologist(
		ctx context.Context,
		id uint,
	) (*models.Psychologist, error)

	GetParent(
		ctx context.Context,
		id uint,
	) (*models.Parent, error)

	GetChild(
		ctx context.Context,
		id uint,
	) (*models.Child, error)

	// -------- Availability windows --------
	CreateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	UpdateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	GetWindow(
		ctx context.Context,
		id uint,
	) (*models.AvailabilityWindow, error)

	ListWindows(
		ctx context.Context,
		psychologistID uint,
	) ([]models.AvailabilityWindow, error)

	// -------- Slots --------
	CreateSlot(
		ctx context.Context,
		s *models.AppointmentSlot,
	) error

	SlotExists(
		ctx context.Context,
		psychologistID uint,
		slotDate time.Time,
		startHM string,
	) (bool, error)

	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.AppointmentSlot, error)

	GetSlotAt(
		ctx context.Context,
		psychologistID uint,
		slotDate time.Time,
		startHM string,
	) (*models.AppointmentSlot, error)

	ListAvailableSlots(
		ctx context.Context,
		psychologistID uint,
		dateFrom time.Time,
		dateTo time.Time,
	) ([]models.AppointmentSlot, error)

	ListWindowSlots(
		ctx context.Context,
		windowID uint,
		dateFrom time.Time,
		dateTo time.Time,
	) ([]models.AppointmentSlot, error)

	// MarkSlotsBooked flips is_booked on every listed slot and links it
	// to the appointment, guarded by is_booked = false. Losing a race
	// for any slot fails the whole call with KindSlotNotAvailable.
	MarkSlotsBooked(
		ctx context.Context,
		slotIDs []uint,
		appointmentID uuid.UUID,
	) error

	// ReleaseAppointmentSlots unbooks every slot linked to the
	// appointment and clears the link.
	ReleaseAppointmentSlots(
		ctx context.Context,
		appointmentID uuid.UUID,
	) error

	DeleteSlots(
		ctx context.Context,
		slotIDs []uint,
	) error

	// DetachWindowSlots clears the owning-window reference on the listed
	// slots, orphaning them without touching bookings.
	DetachWindowSlots(
		ctx context.Context,
		slotIDs []uint,
	) error

	DeleteUnbookedSlotsBefore(
		ctx context.Context,
		cutoffDate time.Time,
	) (int64, error)

	// -------- Appointments --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentByQRCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	QRCodeInUse(
		ctx context.Context,
		code string,
	) (bool, error)

	ListAppointmentsForPsychologist(
		ctx context.Context,
		psychologistID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForParent(
		ctx context.Context,
		parentID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Transactions --------
	// InTransaction runs fn against a transactional view of the
	// repository; any error rolls the whole unit back.
	InTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
