package appointment

import (
	"time"

	"github.com/kindermind/scheduler/internal/models"
	"github.com/kindermind/scheduler/internal/schederr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPaymentPending Status = "Payment_Pending"
	StatusScheduled      Status = "Scheduled"
	StatusInProgress     Status = "In_Progress"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
	StatusNoShow         Status = "No_Show"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Session start may begin up to 15 minutes early; a no-show may only be
// declared 30 minutes after the scheduled end; QR verification is valid
// within 30 minutes either side of the scheduled start.
const (
	EarlyStartGrace   = 15 * time.Minute
	NoShowDelay       = 30 * time.Minute
	QRVerifyTolerance = 30 * time.Minute
)

func InitialStatus() Status { return StatusPaymentPending }

// ===============================
// Transitions
// ===============================
//
// Every status change goes through one of the actions below; nothing
// else writes AppointmentStatus. Illegal attempts fail with the error
// kind of the operation, never silently.

// MarkScheduled confirms payment: Payment_Pending -> Scheduled.
func MarkScheduled(ap *models.Appointment) error {
	if Status(ap.AppointmentStatus) != StatusPaymentPending {
		return schederr.New(schederr.KindInvalidTransition, "only pending appointments can be marked as scheduled")
	}
	ap.AppointmentStatus = string(StatusScheduled)
	ap.PaymentStatus = string(PaymentPaid)
	return nil
}

// StartOnlineSession moves Scheduled -> In_Progress for an online
// session. Allowed only inside [scheduled start - 15min, scheduled end],
// bounds inclusive.
func StartOnlineSession(ap *models.Appointment, now time.Time) error {
	if SessionType(ap.SessionType) != OnlineMeeting {
		return schederr.New(schederr.KindSessionStart, "only online sessions can be started")
	}
	if Status(ap.AppointmentStatus) != StatusScheduled {
		return schederr.New(schederr.KindInvalidTransition, "only scheduled appointments can be started")
	}

	earliest := ap.ScheduledStartTime.Add(-EarlyStartGrace)
	if now.Before(earliest) || now.After(ap.ScheduledEndTime) {
		return schederr.New(schederr.KindSessionStart, "session can only be started within its scheduled window")
	}

	ap.AppointmentStatus = string(StatusInProgress)
	start := now
	ap.ActualStartTime = &start
	return nil
}

// VerifySession records in-person attendance after a QR code match.
// Allowed for a scheduled, unverified initial consultation within 30
// minutes either side of the scheduled start. Status is left untouched;
// completion follows separately.
func VerifySession(ap *models.Appointment, now time.Time) error {
	if SessionType(ap.SessionType) != InitialConsultation {
		return schederr.New(schederr.KindQRVerification, "only in-person consultations use QR verification")
	}
	if Status(ap.AppointmentStatus) != StatusScheduled {
		return schederr.New(schederr.KindQRVerification, "only scheduled appointments can be verified")
	}
	if ap.SessionVerifiedAt != nil {
		return schederr.New(schederr.KindQRVerification, "session already verified")
	}

	offset := now.Sub(ap.ScheduledStartTime)
	if offset < -QRVerifyTolerance || offset > QRVerifyTolerance {
		return schederr.New(schederr.KindQRVerification, "session can only be verified near its scheduled start")
	}

	verified := now
	ap.SessionVerifiedAt = &verified
	if ap.ActualStartTime == nil {
		ap.ActualStartTime = &verified
	}
	return nil
}

// Complete moves Scheduled or In_Progress -> Completed.
func Complete(ap *models.Appointment, now time.Time) error {
	st := Status(ap.AppointmentStatus)
	if st != StatusScheduled && st != StatusInProgress {
		return schederr.New(schederr.KindInvalidTransition, "only scheduled or in-progress appointments can be completed")
	}

	ap.AppointmentStatus = string(StatusCompleted)
	if ap.ActualEndTime == nil {
		end := now
		ap.ActualEndTime = &end
	}
	return nil
}

// CanCancel reports whether the appointment may still be cancelled: not
// yet concluded and not yet started by the clock.
func CanCancel(ap *models.Appointment, now time.Time) bool {
	switch Status(ap.AppointmentStatus) {
	case StatusPaymentPending, StatusScheduled, StatusInProgress:
		return now.Before(ap.ScheduledStartTime)
	default:
		return false
	}
}

// Cancel marks the appointment cancelled. The caller releases the linked
// slots in the same transaction.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if !CanCancel(ap, now) {
		return schederr.New(schederr.KindCancellation, "appointment can no longer be cancelled")
	}
	ap.AppointmentStatus = string(StatusCancelled)
	ap.CancellationReason = reason
	return nil
}

// MarkNoShow declares the appointment a no-show. Legal from Scheduled or
// In_Progress, and only once 30 minutes have passed since the scheduled
// end. The caller releases the linked slots in the same transaction.
func MarkNoShow(ap *models.Appointment, reason string, now time.Time) error {
	st := Status(ap.AppointmentStatus)
	if st != StatusScheduled && st != StatusInProgress {
		return schederr.New(schederr.KindInvalidTransition, "only scheduled or in-progress appointments can be marked as no-show")
	}
	if now.Before(ap.ScheduledEndTime.Add(NoShowDelay)) {
		return schederr.New(schederr.KindNoShow, "no-show can only be declared 30 minutes after the scheduled end")
	}

	ap.AppointmentStatus = string(StatusNoShow)
	ap.CancellationReason = reason
	if ap.ActualEndTime == nil {
		end := now
		ap.ActualEndTime = &end
	}
	return nil
}
