package calendar

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// structuredJSON extracts the structured payload of a tool result as raw JSON.
// Backends differ in how they return data: some set structuredContent, others
// emit a JSON document as text content. Returns nil when neither yields JSON.
func structuredJSON(res *mcp.CallToolResult) json.RawMessage {
	if res == nil {
		return nil
	}

	if res.StructuredContent != nil {
		if data, err := json.Marshal(res.StructuredContent); err == nil {
			return unwrapResult(data)
		}
	}

	text := textContent(res.Content)
	if text == "" {
		return nil
	}
	if !json.Valid([]byte(text)) {
		return nil
	}
	return unwrapResult(json.RawMessage(text))
}

// unwrapResult strips the single-key {"result": ...} envelope some servers
// wrap around their structured output.
func unwrapResult(raw json.RawMessage) json.RawMessage {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return raw
	}
	if inner, ok := wrapper["result"]; ok && len(wrapper) == 1 {
		return inner
	}
	return raw
}

// textContent joins the text blocks of a tool result.
func textContent(content []mcp.Content) string {
	var parts []string
	for _, block := range content {
		if tc, ok := block.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// decodeEvents interprets the structured payload of list_events. The payload
// is either a bare array or an object carrying the event list under "result",
// possibly next to other members; any other shape yields no events.
func decodeEvents(raw json.RawMessage) []Event {
	if raw == nil {
		return nil
	}

	var events []Event
	if err := json.Unmarshal(raw, &events); err == nil {
		return events
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	inner, ok := wrapper["result"]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(inner, &events); err == nil {
		return events
	}

	return nil
}

// decodeCreatedEvent interprets the structured payload of create_event. A
// payload that cannot be decoded yields an event with an empty ID.
func decodeCreatedEvent(raw json.RawMessage) *CreatedEvent {
	created := &CreatedEvent{}
	if raw == nil {
		return created
	}
	_ = json.Unmarshal(raw, created)
	return created
}
