// Package appointment_tools registers the appointment booking tools with the
// MCP server: get_available_slots, check_slot_availability, and book_slot.
//
// The three tools share a conversation-scoped slot cache so follow-up calls
// can reference a slot from the most recent list by index or label instead of
// repeating its timestamps.
package appointment_tools
