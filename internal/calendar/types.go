package calendar

import (
	"encoding/json"
	"time"
)

// EventTime is one boundary of a calendar event. The backend sends either a
// plain timestamp string or a structured {dateTime|date} object; both decode
// into the raw timestamp value. Interpretation (timezone defaulting, day
// clipping) is left to the scheduling layer.
type EventTime struct {
	Value string
}

// UnmarshalJSON accepts a JSON string, null, or an object carrying one of the
// dateTime, date, or value keys (in that order of preference).
func (t *EventTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = s
		return nil
	}

	var structured struct {
		DateTime string `json:"dateTime"`
		Date     string `json:"date"`
		Value    string `json:"value"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		// Unknown shapes degrade to an empty value; the scheduling layer
		// skips events it cannot parse.
		t.Value = ""
		return nil
	}

	switch {
	case structured.DateTime != "":
		t.Value = structured.DateTime
	case structured.Date != "":
		t.Value = structured.Date
	default:
		t.Value = structured.Value
	}
	return nil
}

// MarshalJSON round-trips the raw timestamp value.
func (t EventTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

// Event is a calendar event as returned by the backend's list_events tool.
type Event struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary,omitempty"`
	Start   EventTime `json:"start"`
	End     EventTime `json:"end"`
	Status  string    `json:"status,omitempty"`
}

// Attendee is a guest entry on a create_event request.
type Attendee struct {
	Email    string `json:"email"`
	Optional bool   `json:"optional"`
}

// EventInput is the input for creating a calendar event.
type EventInput struct {
	CalendarID  string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []Attendee
}

// CreatedEvent is the backend's response to a successful create_event call.
type CreatedEvent struct {
	ID       string    `json:"id"`
	Summary  string    `json:"summary,omitempty"`
	Start    EventTime `json:"start"`
	End      EventTime `json:"end"`
	HTMLLink string    `json:"htmlLink,omitempty"`
}
