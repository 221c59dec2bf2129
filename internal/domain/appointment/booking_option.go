package appointment

// BookingOption is one bookable choice shown to parents: a single slot
// for online sessions, or a consecutive two-slot block for in-person
// consultations (SlotIDs then carries both ids in order).
type BookingOption struct {
	SlotID             uint     `json:"slot_id"`
	Date               string   `json:"date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	IsConsecutiveBlock bool     `json:"is_consecutive_block"`
	SlotIDs            []uint   `json:"consecutive_slot_ids,omitempty"`
	SessionTypes       []string `json:"session_types"`
}

// Actor identifies who is asking for an appointment. Zero ids mean the
// caller does not hold that role. Identity itself is established by an
// outer layer; the core only enforces ownership.
type Actor struct {
	ParentID       uint
	PsychologistID uint
}

// CanAccess reports whether the actor owns a side of the appointment.
func (a Actor) CanAccess(parentID, psychologistID uint) bool {
	if a.ParentID != 0 && a.ParentID == parentID {
		return true
	}
	if a.PsychologistID != 0 && a.PsychologistID == psychologistID {
		return true
	}
	return false
}
