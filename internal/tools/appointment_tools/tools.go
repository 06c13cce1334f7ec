package appointment_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/slotbooker/internal/booking"
	"github.com/teemow/slotbooker/internal/server"
)

// RegisterAppointmentTools registers the appointment tools with the MCP
// server. The tools share one slot cache for the lifetime of the server.
func RegisterAppointmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if sc.Engine() == nil {
		return fmt.Errorf("booking engine is required to register appointment tools")
	}

	cache := NewSlotCache()

	getSlotsTool := mcp.NewTool("get_available_slots",
		mcp.WithDescription("Retrieve upcoming appointment slots for a specific day. "+
			"Always provide the appointment date in YYYY-MM-DD format."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Preferred appointment date in ISO format (YYYY-MM-DD)."),
		),
		mcp.WithString("doctor",
			mcp.Description("Doctor name or identifier to filter the slot list."),
		),
	)

	s.AddTool(getSlotsTool, instrumented("get_available_slots", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetSlots(ctx, request, sc, cache)
	}))

	checkTool := mcp.NewTool("check_slot_availability",
		mcp.WithDescription("Check whether a specific slot is still free before booking. "+
			"Pass the slot identifier returned from get_available_slots. "+
			"You may also pass slot_index to reference a slot by its list position."),
		mcp.WithString("slot_id",
			mcp.Description("Unique identifier for the slot."),
		),
		mcp.WithString("date",
			mcp.Description("Start time of the slot in ISO 8601 format (auto-filled when slot_index is provided)."),
		),
		mcp.WithString("start_time",
			mcp.Description("Start time of the slot in ISO 8601 format, if available."),
		),
		mcp.WithNumber("slot_index",
			mcp.Description("0-based index referencing the most recently listed slot."),
		),
	)

	s.AddTool(checkTool, instrumented("check_slot_availability", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCheckAvailability(ctx, request, sc, cache)
	}))

	bookTool := mcp.NewTool("book_slot",
		mcp.WithDescription("Book an appointment for the patient. "+
			"Confirm details with the patient before calling. "+
			"Either slot_id or slot_index must be supplied to identify the slot."),
		mcp.WithString("slot_id",
			mcp.Description("Unique identifier for the slot to book."),
		),
		mcp.WithNumber("slot_index",
			mcp.Description("0-based index referencing the slot list retrieved earlier."),
		),
		mcp.WithString("slot_label",
			mcp.Description("Human readable slot label to reference the time range."),
		),
		mcp.WithString("date",
			mcp.Description("Start time of the slot in ISO 8601 format (auto-filled when slot_index is provided)."),
		),
		mcp.WithString("patient_name",
			mcp.Required(),
			mcp.Description("Full name of the patient."),
		),
		mcp.WithString("patient_phone",
			mcp.Required(),
			mcp.Description("Primary phone number for the patient."),
		),
		mcp.WithString("patient_email",
			mcp.Description("Patient email address, if provided."),
		),
		mcp.WithString("notes",
			mcp.Description("Additional notes or reason for the visit."),
		),
		mcp.WithString("doctor",
			mcp.Description("Doctor the appointment is booked with."),
		),
	)

	s.AddTool(bookTool, instrumented("book_slot", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleBookSlot(ctx, request, sc, cache)
	}))

	return nil
}

func handleGetSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, cache *SlotCache) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	date := stringArg(args, "date")

	result, err := sc.Engine().FetchSlots(ctx, booking.FetchSlotsRequest{Date: date})
	if err != nil {
		return envelopeResult(booking.NewEnvelope(nil, err)), nil
	}

	cache.Record(date, result.Slots)

	env := booking.NewEnvelope(result, nil)
	if len(result.Slots) == 0 {
		env.Message = fmt.Sprintf("No free slots found on %s.", date)
	} else {
		env.Message = fmt.Sprintf("Found %d available slots on %s.", len(result.Slots), date)
	}
	return envelopeResult(env), nil
}

func handleCheckAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, cache *SlotCache) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	ref := slotRefFromArgs(args, cache)

	result, err := sc.Engine().CheckAvailability(ctx, booking.CheckAvailabilityRequest{SlotRef: ref})
	return envelopeResult(booking.NewEnvelope(result, err)), nil
}

func handleBookSlot(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, cache *SlotCache) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := booking.BookSlotRequest{
		SlotRef:      slotRefFromArgs(args, cache),
		PatientName:  stringArg(args, "patient_name"),
		PatientPhone: stringArg(args, "patient_phone"),
		PatientEmail: stringArg(args, "patient_email"),
		Notes:        stringArg(args, "notes"),
		Doctor:       stringArg(args, "doctor"),
	}

	result, err := sc.Engine().BookSlot(ctx, req)
	if err != nil {
		server.BookingOutcomes.WithLabelValues(string(booking.KindOf(err))).Inc()
	} else {
		server.BookingOutcomes.WithLabelValues("confirmed").Inc()
	}
	return envelopeResult(booking.NewEnvelope(result, err)), nil
}

// slotRefFromArgs builds a slot reference from explicit arguments, then fills
// the gaps from the cached slot list when slot_index or slot_label is given.
func slotRefFromArgs(args map[string]interface{}, cache *SlotCache) booking.SlotRef {
	ref := booking.SlotRef{
		SlotID:    stringArg(args, "slot_id"),
		Date:      stringArg(args, "date"),
		StartTime: stringArg(args, "start_time"),
		EndTime:   stringArg(args, "end_time"),
	}

	index, hasIndex := intArg(args, "slot_index")
	label := stringArg(args, "slot_label")
	return cache.Resolve(ref, index, hasIndex, label)
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

// intArg reads an integer argument. JSON numbers decode as float64, but some
// clients send the index as a string.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// envelopeResult serializes the envelope as the tool result, flagging it as
// an error result when the operation failed so MCP clients surface it.
func envelopeResult(env booking.Envelope) *mcp.CallToolResult {
	payload, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	if !env.Success {
		return mcp.NewToolResultError(string(payload))
	}
	return mcp.NewToolResultText(string(payload))
}
