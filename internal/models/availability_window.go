package models

import "time"

// AvailabilityWindow is a psychologist-declared block of bookable time:
// either recurring on a weekday (0=Sunday .. 6=Saturday) or a one-off
// on a specific date. Start/end are wall-clock "15:04" values.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PsychologistID uint         `gorm:"index;not null" json:"psychologist_id"`
	Psychologist   Psychologist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DayOfWeek int `gorm:"index" json:"day_of_week"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	IsRecurring  bool       `gorm:"default:true" json:"is_recurring"`
	SpecificDate *time.Time `gorm:"type:date" json:"specific_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
