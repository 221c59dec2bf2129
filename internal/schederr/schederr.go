package schederr

import (
	"errors"
	"fmt"
)

// Kind identifies one failure mode of the scheduling core. Callers match
// on the kind, never on the message text.
type Kind string

const (
	KindSlotGeneration               Kind = "slot_generation_failed"
	KindInvalidWindow                Kind = "invalid_availability_window"
	KindAvailabilityConflict         Kind = "availability_conflict"
	KindSlotNotAvailable             Kind = "slot_not_available"
	KindInsufficientConsecutiveSlots Kind = "insufficient_consecutive_slots"
	KindBooking                      Kind = "booking_rejected"
	KindAppointmentNotFound          Kind = "appointment_not_found"
	KindAccessDenied                 Kind = "appointment_access_denied"
	KindCancellation                 Kind = "cancellation_rejected"
	KindQRVerification               Kind = "qr_verification_failed"
	KindSessionStart                 Kind = "session_start_rejected"
	KindNoShow                       Kind = "no_show_rejected"
	KindInvalidTransition            Kind = "invalid_state"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" for errors raised outside the
// scheduling core.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
