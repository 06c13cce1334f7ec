package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope_SlotList(t *testing.T) {
	env := NewEnvelope(&SlotList{Slots: []SlotPayload{{
		ID:        "slot-2025-06-02T09:00:00Z",
		Label:     "09:00 AM - 09:30 AM",
		StartTime: "2025-06-02T09:00:00Z",
		EndTime:   "2025-06-02T09:30:00Z",
		Timezone:  "UTC",
	}}}, nil)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["success"])
	slots, ok := decoded["slots"].([]any)
	require.True(t, ok)
	require.Len(t, slots, 1)

	slot := slots[0].(map[string]any)
	assert.Equal(t, "slot-2025-06-02T09:00:00Z", slot["id"])
	assert.Equal(t, "09:00 AM - 09:30 AM", slot["label"])
	assert.Equal(t, "2025-06-02T09:00:00Z", slot["start_time"])
	assert.Equal(t, "2025-06-02T09:30:00Z", slot["end_time"])
	assert.Equal(t, "UTC", slot["timezone"])
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, decoded, "available")
	assert.NotContains(t, decoded, "event_id")
}

func TestNewEnvelope_Availability(t *testing.T) {
	env := NewEnvelope(&Availability{Available: false, Message: "Slot x is no longer available."}, nil)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, false, decoded["available"], "available must be present even when false")
	assert.Equal(t, "Slot x is no longer available.", decoded["message"])
}

func TestNewEnvelope_Confirmation(t *testing.T) {
	env := NewEnvelope(&Confirmation{EventID: "evt-9", Message: "Appointment booked for Ada at 02:00 PM."}, nil)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "evt-9", decoded["event_id"])
	assert.Equal(t, "Appointment booked for Ada at 02:00 PM.", decoded["message"])
}

func TestNewEnvelope_Error(t *testing.T) {
	env := NewEnvelope(nil, inputError("Missing required 'date' parameter."))

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Missing required 'date' parameter.", decoded["error"])
	assert.NotContains(t, decoded, "slots")
}
