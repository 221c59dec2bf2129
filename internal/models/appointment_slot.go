package models

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentSlot is one bookable 1-hour unit generated from an
// availability window. AvailabilityWindowID goes nil when a booked slot
// is orphaned by a window edit; the slot and its appointment survive.
type AppointmentSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PsychologistID uint         `gorm:"uniqueIndex:idx_slots_psy_date_start;index:idx_slots_psy_booked" json:"psychologist_id"`
	Psychologist   Psychologist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AvailabilityWindowID *uint `gorm:"index" json:"availability_window_id"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`

	SlotDate  time.Time `gorm:"type:date;uniqueIndex:idx_slots_psy_date_start" json:"slot_date"`
	StartTime string    `gorm:"size:5;uniqueIndex:idx_slots_psy_date_start" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	IsBooked bool `gorm:"index:idx_slots_psy_booked" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
