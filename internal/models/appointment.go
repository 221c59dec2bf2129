package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ChildID uint  `gorm:"index;not null" json:"child_id"`
	Child   Child `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"child"`

	PsychologistID uint         `gorm:"index;not null" json:"psychologist_id"`
	Psychologist   Psychologist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"psychologist"`

	ParentID uint   `gorm:"index;not null" json:"parent_id"`
	Parent   Parent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent"`

	SessionType string `gorm:"size:20;not null" json:"session_type"`

	AppointmentStatus string `gorm:"size:20;default:'Payment_Pending'" json:"appointment_status"`
	PaymentStatus     string `gorm:"size:20;default:'Pending'" json:"payment_status"`

	ScheduledStartTime time.Time `gorm:"index" json:"scheduled_start_time"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time"`

	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`

	// Online sessions get a meeting link; in-person consultations get an
	// address plus a QR verification code.
	MeetingLink    string  `gorm:"size:512" json:"meeting_link"`
	MeetingID      string  `gorm:"size:100" json:"meeting_id"`
	MeetingAddress string  `gorm:"type:text" json:"meeting_address"`
	QRCode         *string `gorm:"column:qr_verification_code;size:32;uniqueIndex" json:"qr_verification_code"`

	SessionVerifiedAt *time.Time `json:"session_verified_at"`

	ParentNotes        string `gorm:"type:text" json:"parent_notes"`
	PsychologistNotes  string `gorm:"type:text" json:"psychologist_notes"`
	CancellationReason string `gorm:"type:text" json:"cancellation_reason"`

	Slots []AppointmentSlot `gorm:"foreignKey:AppointmentID" json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
