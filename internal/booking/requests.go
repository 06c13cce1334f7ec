package booking

// FetchSlotsRequest asks for bookable slots on one calendar date.
type FetchSlotsRequest struct {
	// Date is the requested day in YYYY-MM-DD form. A full timestamp is
	// accepted too; only its date component is used.
	Date string `json:"date"`
}

// SlotRef identifies a candidate slot by its start (and optionally end) time.
// Date and StartTime are interchangeable; Date wins when both are set, which
// matches how conversation drivers fill these fields from a listed slot.
type SlotRef struct {
	SlotID    string `json:"slot_id,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// start returns the raw start reference, preferring Date.
func (r SlotRef) start() string {
	if r.Date != "" {
		return r.Date
	}
	return r.StartTime
}

// CheckAvailabilityRequest asks whether a referenced slot is still free.
type CheckAvailabilityRequest struct {
	SlotRef
}

// BookSlotRequest books a referenced slot for a patient.
type BookSlotRequest struct {
	SlotRef

	PatientName  string `json:"patient_name" validate:"required"`
	PatientPhone string `json:"patient_phone" validate:"required"`
	PatientEmail string `json:"patient_email,omitempty" validate:"omitempty,email"`
	Notes        string `json:"notes,omitempty"`
	Doctor       string `json:"doctor,omitempty"`
}
