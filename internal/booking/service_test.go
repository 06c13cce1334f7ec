package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/slotbooker/internal/calendar"
)

type fakeCalendar struct {
	events    []calendar.Event
	listErr   error
	created   []calendar.EventInput
	createErr error
	listCalls int
	closes    int
}

func (f *fakeCalendar) ListEvents(_ context.Context, _ string, _, _ time.Time, _ int) ([]calendar.Event, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, input calendar.EventInput) (*calendar.CreatedEvent, error) {
	f.created = append(f.created, input)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &calendar.CreatedEvent{ID: "evt-123"}, nil
}

func (f *fakeCalendar) Close() error {
	f.closes++
	return nil
}

func newTestService(t *testing.T, cal *fakeCalendar) *Service {
	t.Helper()
	svc, err := NewService(cal, Config{
		CalendarID:             "primary",
		Timezone:               "UTC",
		DefaultDurationMinutes: 30,
		WorkdayStart:           "09:00",
		WorkdayEnd:             "17:00",
	})
	require.NoError(t, err)
	return svc
}

func busyEvent(start, end string) calendar.Event {
	return calendar.Event{
		ID:    "busy",
		Start: calendar.EventTime{Value: start},
		End:   calendar.EventTime{Value: end},
	}
}

func TestFetchSlots_MissingDate(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	_, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{})
	require.Error(t, err)
	assert.Equal(t, KindInput, KindOf(err))
	assert.Equal(t, "Missing required 'date' parameter.", err.Error())
	assert.Zero(t, cal.listCalls, "input errors must not trigger a remote call")
}

func TestFetchSlots_InvalidDate(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	_, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{Date: "next tuesday"})
	require.Error(t, err)
	assert.Equal(t, KindInput, KindOf(err))
	assert.Zero(t, cal.listCalls)
}

func TestFetchSlots_SkipsBusySlot(t *testing.T) {
	cal := &fakeCalendar{
		events: []calendar.Event{busyEvent("2025-06-02T10:00:00Z", "2025-06-02T10:30:00Z")},
	}
	svc := newTestService(t, cal)

	result, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{Date: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, result.Slots, 15)

	assert.Equal(t, "2025-06-02T09:00:00Z", result.Slots[0].StartTime)
	assert.Equal(t, "2025-06-02T10:30:00Z", result.Slots[2].StartTime)
	assert.Equal(t, "UTC", result.Slots[0].Timezone)
	assert.Equal(t, "09:00 AM - 09:30 AM", result.Slots[0].Label)

	for _, slot := range result.Slots {
		assert.NotEqual(t, "2025-06-02T10:00:00Z", slot.StartTime, "busy slot must be skipped")
	}
}

func TestFetchSlots_FullyBusyDay(t *testing.T) {
	cal := &fakeCalendar{
		events: []calendar.Event{busyEvent("2025-06-02T09:00:00Z", "2025-06-02T17:00:00Z")},
	}
	svc := newTestService(t, cal)

	result, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{Date: "2025-06-02"})
	require.NoError(t, err)
	assert.Empty(t, result.Slots)
}

func TestFetchSlots_RemoteError(t *testing.T) {
	cal := &fakeCalendar{
		listErr: &calendar.ToolError{Tool: "list_events", Message: "backend exploded"},
	}
	svc := newTestService(t, cal)

	_, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{Date: "2025-06-02"})
	require.Error(t, err)
	assert.Equal(t, KindRemote, KindOf(err))
	assert.Equal(t, "backend exploded", err.Error(), "backend message must be preserved verbatim")
}

func TestFetchSlots_SessionError(t *testing.T) {
	cal := &fakeCalendar{
		listErr: &calendar.SessionError{Err: errors.New("connection refused")},
	}
	svc := newTestService(t, cal)

	_, err := svc.FetchSlots(context.Background(), FetchSlotsRequest{Date: "2025-06-02"})
	require.Error(t, err)
	assert.Equal(t, KindSession, KindOf(err))
}

func TestCheckAvailability(t *testing.T) {
	cal := &fakeCalendar{
		events: []calendar.Event{busyEvent("2025-06-02T10:00:00Z", "2025-06-02T11:00:00Z")},
	}
	svc := newTestService(t, cal)

	free, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		SlotRef: SlotRef{StartTime: "2025-06-02T14:00:00Z"},
	})
	require.NoError(t, err)
	assert.True(t, free.Available)
	assert.Equal(t, "is available.", free.Message)

	taken, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		SlotRef: SlotRef{SlotID: "slot-x", StartTime: "2025-06-02T10:15:00Z"},
	})
	require.NoError(t, err)
	assert.False(t, taken.Available)
	assert.Equal(t, "Slot slot-x is no longer available.", taken.Message)
}

func TestCheckAvailability_TouchingSlotIsFree(t *testing.T) {
	cal := &fakeCalendar{
		events: []calendar.Event{busyEvent("2025-06-02T10:00:00Z", "2025-06-02T10:30:00Z")},
	}
	svc := newTestService(t, cal)

	result, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{
		SlotRef: SlotRef{StartTime: "2025-06-02T10:30:00Z"},
	})
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailability_MissingStart(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	_, err := svc.CheckAvailability(context.Background(), CheckAvailabilityRequest{})
	require.Error(t, err)
	assert.Equal(t, KindInput, KindOf(err))
	assert.Equal(t, "Missing slot start time.", err.Error())
	assert.Zero(t, cal.listCalls)
}

func validBooking() BookSlotRequest {
	return BookSlotRequest{
		SlotRef:      SlotRef{StartTime: "2025-06-02T14:00:00Z"},
		PatientName:  "Ada Lovelace",
		PatientPhone: "+1-555-0100",
	}
}

func TestBookSlot_Success(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	req := validBooking()
	req.PatientEmail = "ada@example.com"
	req.Notes = "first visit"
	req.Doctor = "Dr. Hopper"

	result, err := svc.BookSlot(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "evt-123", result.EventID)
	assert.Equal(t, "Appointment booked for Ada Lovelace at 02:00 PM.", result.Message)

	require.Len(t, cal.created, 1)
	input := cal.created[0]
	assert.Equal(t, "Dr. Hopper - Appointment with Ada Lovelace", input.Summary)
	assert.Equal(t, "Patient phone: +1-555-0100\nNotes: first visit", input.Description)
	assert.Equal(t, "UTC", input.TimeZone)
	require.Len(t, input.Attendees, 1)
	assert.Equal(t, "ada@example.com", input.Attendees[0].Email)
	assert.True(t, input.End.Sub(input.Start) == 30*time.Minute, "end defaults to start plus duration")
}

func TestBookSlot_MissingPatientFields(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	req := validBooking()
	req.PatientPhone = ""

	_, err := svc.BookSlot(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, KindInput, KindOf(err))
	assert.Equal(t, "Patient name and phone number are required.", err.Error())
	assert.Zero(t, cal.listCalls)
	assert.Empty(t, cal.created)
}

func TestBookSlot_InvalidEmail(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	req := validBooking()
	req.PatientEmail = "not-an-email"

	_, err := svc.BookSlot(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, KindInput, KindOf(err))
	assert.Empty(t, cal.created)
}

func TestBookSlot_ConflictIssuesNoCreate(t *testing.T) {
	// A busy interval that appeared after the slot was listed: booking must
	// fail with a conflict, not a remote error, and never reach create_event.
	cal := &fakeCalendar{
		events: []calendar.Event{busyEvent("2025-06-02T14:00:00Z", "2025-06-02T15:00:00Z")},
	}
	svc := newTestService(t, cal)

	_, err := svc.BookSlot(context.Background(), validBooking())
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "The selected time is no longer available.", err.Error())
	assert.Equal(t, 1, cal.listCalls, "booking must refetch the day's events")
	assert.Empty(t, cal.created, "conflicting booking must not mutate remote state")
}

func TestBookSlot_CreateFailure(t *testing.T) {
	cal := &fakeCalendar{
		createErr: &calendar.ToolError{Tool: "create_event", Message: "quota exceeded"},
	}
	svc := newTestService(t, cal)

	_, err := svc.BookSlot(context.Background(), validBooking())
	require.Error(t, err)
	assert.Equal(t, KindRemote, KindOf(err))
	assert.Equal(t, "quota exceeded", err.Error())
}

func TestBookSlot_NaiveStartUsesConfiguredTimezone(t *testing.T) {
	cal := &fakeCalendar{}
	svc, err := NewService(cal, Config{
		Timezone:               "Asia/Kolkata",
		DefaultDurationMinutes: 30,
	})
	require.NoError(t, err)

	req := validBooking()
	req.SlotRef = SlotRef{StartTime: "2025-06-02T14:00:00"}

	result, err := svc.BookSlot(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Appointment booked for Ada Lovelace at 02:00 PM.", result.Message)

	require.Len(t, cal.created, 1)
	assert.Equal(t, "Asia/Kolkata", cal.created[0].TimeZone)
	assert.Equal(t, "2025-06-02T14:00:00+05:30", cal.created[0].Start.Format(time.RFC3339))
}

func TestServiceClose(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestService(t, cal)

	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
	assert.Equal(t, 2, cal.closes)
}

func TestNewService_InvalidConfig(t *testing.T) {
	_, err := NewService(&fakeCalendar{}, Config{Timezone: "Mars/Olympus"})
	assert.Error(t, err)

	_, err = NewService(&fakeCalendar{}, Config{WorkdayStart: "nope"})
	assert.Error(t, err)
}
