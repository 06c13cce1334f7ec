package booking

import (
	"time"

	"github.com/teemow/slotbooker/internal/schedule"
)

// SlotPayload is the caller-facing view of a bookable slot.
type SlotPayload struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// SlotList is the successful result of FetchSlots.
type SlotList struct {
	Slots []SlotPayload `json:"slots"`
}

// Availability is the successful result of CheckAvailability.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Confirmation is the successful result of BookSlot.
type Confirmation struct {
	EventID string `json:"event_id"`
	Message string `json:"message"`
}

// Envelope is the uniform result shape handed to the conversation driver.
// Exactly one of the operation-specific payload members is populated on
// success; Error carries the failure message otherwise.
type Envelope struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Slots     []SlotPayload `json:"slots,omitempty"`
	Available *bool         `json:"available,omitempty"`
	EventID   string        `json:"event_id,omitempty"`
}

// NewEnvelope folds an operation result and error into the uniform envelope.
// result must be one of *SlotList, *Availability, or *Confirmation (or nil
// when err is set).
func NewEnvelope(result any, err error) Envelope {
	if err != nil {
		return Envelope{Error: err.Error()}
	}

	env := Envelope{Success: true}
	switch r := result.(type) {
	case *SlotList:
		env.Slots = r.Slots
	case *Availability:
		available := r.Available
		env.Available = &available
		env.Message = r.Message
	case *Confirmation:
		env.EventID = r.EventID
		env.Message = r.Message
	}
	return env
}

func slotPayload(s schedule.Slot) SlotPayload {
	return SlotPayload{
		ID:        s.ID,
		Label:     s.Label(),
		StartTime: s.Start.Format(time.RFC3339),
		EndTime:   s.End.Format(time.RFC3339),
		Timezone:  s.Location.String(),
	}
}
