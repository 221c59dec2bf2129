package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/kindermind/scheduler/internal/domain/appointment"
	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Actors
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPsychologist(
	ctx context.Context,
	id uint,
) (*models.Psychologist, error) {

	var psy models.Psychologist
	if err := r.db.WithContext(ctx).First(&psy, id).Error; err != nil {
		return nil, err
	}
	return &psy, nil
}

func (r *SchedulingGormRepository) GetParent(
	ctx context.Context,
	id uint,
) (*models.Parent, error) {

	var parent models.Parent
	if err := r.db.WithContext(ctx).First(&parent, id).Error; err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *SchedulingGormRepository) GetChild(
	ctx context.Context,
	id uint,
) (*models.Child, error) {

	var child models.Child
	if err := r.db.WithContext(ctx).First(&child, id).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *SchedulingGormRepository) UpdateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *SchedulingGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SchedulingGormRepository) ListWindows(
	ctx context.Context,
	psychologistID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateSlot(
	ctx context.Context,
	s *models.AppointmentSlot,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SchedulingGormRepository) SlotExists(
	ctx context.Context,
	psychologistID uint,
	slotDate time.Time,
	startHM string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where(
			"psychologist_id = ? AND slot_date = ? AND start_time = ?",
			psychologistID, slotDate, startHM,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.AppointmentSlot, error) {

	var slot models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *SchedulingGormRepository) GetSlotAt(
	ctx context.Context,
	psychologistID uint,
	slotDate time.Time,
	startHM string,
) (*models.AppointmentSlot, error) {

	var slot models.AppointmentSlot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"psychologist_id = ? AND slot_date = ? AND start_time = ?",
			psychologistID, slotDate, startHM,
		).
		First(&slot).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *SchedulingGormRepository) ListAvailableSlots(
	ctx context.Context,
	psychologistID uint,
	dateFrom time.Time,
	dateTo time.Time,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Where(
			"psychologist_id = ? AND is_booked = false AND slot_date >= ? AND slot_date <= ?",
			psychologistID, dateFrom, dateTo,
		).
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SchedulingGormRepository) ListWindowSlots(
	ctx context.Context,
	windowID uint,
	dateFrom time.Time,
	dateTo time.Time,
) ([]models.AppointmentSlot, error) {

	var slots []models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Where(
			"availability_window_id = ? AND slot_date >= ? AND slot_date <= ?",
			windowID, dateFrom, dateTo,
		).
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SchedulingGormRepository) MarkSlotsBooked(
	ctx context.Context,
	slotIDs []uint,
	appointmentID uuid.UUID,
) error {

	// Guarded update: a slot claimed by a concurrent booking no longer
	// matches is_booked = false, so the affected count betrays the race.
	res := r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("id IN ? AND is_booked = false", slotIDs).
		Updates(map[string]any{
			"is_booked":      true,
			"appointment_id": appointmentID,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(slotIDs)) {
		return schederr.New(schederr.KindSlotNotAvailable, "slot was booked by someone else")
	}

	return nil
}

func (r *SchedulingGormRepository) ReleaseAppointmentSlots(
	ctx context.Context,
	appointmentID uuid.UUID,
) error {

	return r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("appointment_id = ?", appointmentID).
		Updates(map[string]any{
			"is_booked":      false,
			"appointment_id": nil,
		}).Error
}

func (r *SchedulingGormRepository) DeleteSlots(
	ctx context.Context,
	slotIDs []uint,
) error {

	return r.db.WithContext(ctx).
		Where("id IN ?", slotIDs).
		Delete(&models.AppointmentSlot{}).Error
}

func (r *SchedulingGormRepository) DetachWindowSlots(
	ctx context.Context,
	slotIDs []uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.AppointmentSlot{}).
		Where("id IN ?", slotIDs).
		Update("availability_window_id", nil).Error
}

func (r *SchedulingGormRepository) DeleteUnbookedSlotsBefore(
	ctx context.Context,
	cutoffDate time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("is_booked = false AND slot_date < ?", cutoffDate).
		Delete(&models.AppointmentSlot{})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Slots").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) GetAppointmentByQRCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("qr_verification_code = ?", code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) QRCodeInUse(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("qr_verification_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForPsychologist(
	ctx context.Context,
	psychologistID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Parent").
		Where(
			"psychologist_id = ? AND scheduled_start_time >= ? AND scheduled_start_time < ?",
			psychologistID, from, to,
		).
		Order("scheduled_start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForParent(
	ctx context.Context,
	parentID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Psychologist").
		Where(
			"parent_id = ? AND scheduled_start_time >= ? AND scheduled_start_time < ?",
			parentID, from, to,
		).
		Order("scheduled_start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *SchedulingGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
