package appointment

import "time"

// SessionType is a fixed-duration appointment category. It determines
// how many consecutive slots a booking consumes and which post-booking
// artifacts exist (meeting link vs. QR code + address).
type SessionType string

const (
	// OnlineMeeting is a 1-hour video session.
	OnlineMeeting SessionType = "OnlineMeeting"
	// InitialConsultation is a 2-hour in-person session.
	InitialConsultation SessionType = "InitialConsultation"
)

func (s SessionType) Valid() bool {
	return s == OnlineMeeting || s == InitialConsultation
}

// SlotCount is the number of consecutive 1-hour slots the session needs.
func (s SessionType) SlotCount() int {
	if s == InitialConsultation {
		return 2
	}
	return 1
}

func (s SessionType) Duration() time.Duration {
	return time.Duration(s.SlotCount()) * time.Hour
}
