package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindermind/scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID                 uuid.UUID `json:"id"`
	SessionType        string    `json:"session_type"`
	AppointmentStatus  string    `json:"appointment_status"`
	ScheduledStartTime time.Time `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time"`
	ChildName          string    `json:"child_name"`
	PsychologistName   string    `json:"psychologist_name"`
}

func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:                 ap.ID,
			SessionType:        ap.SessionType,
			AppointmentStatus:  ap.AppointmentStatus,
			ScheduledStartTime: ap.ScheduledStartTime,
			ScheduledEndTime:   ap.ScheduledEndTime,
			ChildName:          ap.Child.Name,
			PsychologistName:   ap.Psychologist.Name,
		})
	}
	return out
}
