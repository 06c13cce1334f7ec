package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/teemow/slotbooker/internal/calendar"
	"github.com/teemow/slotbooker/internal/logging"
	"github.com/teemow/slotbooker/internal/schedule"
)

// listMaxResults caps a single day's event fetch.
const listMaxResults = 250

// CalendarAPI is the slice of the calendar client the engine depends on.
type CalendarAPI interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.CreatedEvent, error)
	Close() error
}

// Config holds the engine settings, read once at construction.
type Config struct {
	// CalendarID selects the target calendar; defaults to "primary".
	CalendarID string

	// Timezone is the IANA name of the display timezone; defaults to UTC.
	Timezone string

	// DefaultDurationMinutes is the fixed slot length; values below one
	// minute are raised to one.
	DefaultDurationMinutes int

	// WorkdayStart and WorkdayEnd bound the daily slot window in HH:MM form.
	// Defaults are 09:00 and 17:00.
	WorkdayStart string
	WorkdayEnd   string

	Logger *slog.Logger
}

// Service is the appointment engine. All three operations return a typed
// result and, on failure, an *Error carrying the failure kind; use
// NewEnvelope to fold either outcome into the uniform caller-facing shape.
type Service struct {
	cal        CalendarAPI
	calendarID string
	loc        *time.Location
	duration   time.Duration
	window     schedule.WorkWindow
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewService builds the engine on top of a calendar client.
func NewService(cal CalendarAPI, cfg Config) (*Service, error) {
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	minutes := cfg.DefaultDurationMinutes
	if minutes < 1 {
		minutes = 30
	}

	start := cfg.WorkdayStart
	if start == "" {
		start = "09:00"
	}
	end := cfg.WorkdayEnd
	if end == "" {
		end = "17:00"
	}
	window, err := schedule.ParseWorkWindow(start, end)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cal:        cal,
		calendarID: calendarID,
		loc:        loc,
		duration:   time.Duration(minutes) * time.Minute,
		window:     window,
		validate:   validator.New(),
		logger:     logging.WithService(logger, "booking"),
	}, nil
}

// Close releases the underlying calendar session. Safe to call repeatedly.
func (s *Service) Close() error {
	return s.cal.Close()
}

// Location returns the configured display timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Duration returns the configured slot duration.
func (s *Service) Duration() time.Duration {
	return s.duration
}

// FetchSlots computes the bookable slots for the requested date.
func (s *Service) FetchSlots(ctx context.Context, req FetchSlotsRequest) (*SlotList, error) {
	if req.Date == "" {
		return nil, inputError("Missing required 'date' parameter.")
	}

	day, ok := schedule.ParseTimestamp(req.Date, s.loc)
	if !ok {
		return nil, inputError("Invalid 'date' format. Use YYYY-MM-DD.")
	}

	dayStart, dayEnd := s.window.DayBounds(day.Year(), day.Month(), day.Day(), s.loc)

	busy, err := s.listBusy(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := schedule.GenerateSlots(dayStart, dayEnd, busy, s.duration, s.loc)

	payloads := make([]SlotPayload, 0, len(slots))
	for _, slot := range slots {
		payloads = append(payloads, slotPayload(slot))
	}

	s.logger.Debug("computed slots",
		logging.Operation("fetch_slots"),
		"date", req.Date,
		"busy_intervals", len(busy),
		"slots", len(payloads),
	)

	return &SlotList{Slots: payloads}, nil
}

// CheckAvailability re-derives the busy model for the referenced slot's day
// and reports whether the slot is still free.
func (s *Service) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*Availability, error) {
	start, end, opErr := s.resolveSlot(req.SlotRef,
		"Missing slot start time.",
		"Could not parse slot start time.",
		"Could not determine slot end time.",
	)
	if opErr != nil {
		return nil, opErr
	}

	dayStart, dayEnd := s.window.DayBounds(start.Year(), start.Month(), start.Day(), s.loc)

	busy, err := s.listBusy(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	conflict := schedule.HasConflict(start, end, busy)

	var parts []string
	if req.SlotID != "" {
		parts = append(parts, fmt.Sprintf("Slot %s", req.SlotID))
	}
	if conflict {
		parts = append(parts, "is no longer available.")
	} else {
		parts = append(parts, "is available.")
	}

	return &Availability{
		Available: !conflict,
		Message:   strings.Join(parts, " "),
	}, nil
}

// BookSlot re-validates the referenced slot against a fresh fetch and creates
// the calendar event only if it is still free.
func (s *Service) BookSlot(ctx context.Context, req BookSlotRequest) (*Confirmation, error) {
	start, end, opErr := s.resolveSlot(req.SlotRef,
		"Missing slot start time.",
		"Invalid slot start time.",
		"Invalid slot end time.",
	)
	if opErr != nil {
		return nil, opErr
	}

	if err := s.validate.Struct(req); err != nil {
		if req.PatientName == "" || req.PatientPhone == "" {
			return nil, inputError("Patient name and phone number are required.")
		}
		return nil, inputError("Invalid patient email address.")
	}

	logger := s.logger.With(
		logging.Operation("book_slot"),
		"attempt_id", uuid.NewString(),
		logging.Patient(req.PatientPhone),
	)

	dayStart, dayEnd := s.window.DayBounds(start.Year(), start.Month(), start.Day(), s.loc)

	// Always refetch: the busy model from a prior listing may be stale.
	busy, err := s.listBusy(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if schedule.HasConflict(start, end, busy) {
		logger.Info("booking rejected", logging.Status(logging.StatusError), "reason", "conflict")
		return nil, conflictError("The selected time is no longer available.")
	}

	summary := fmt.Sprintf("Appointment with %s", req.PatientName)
	if req.Doctor != "" {
		summary = fmt.Sprintf("%s - %s", req.Doctor, summary)
	}

	description := fmt.Sprintf("Patient phone: %s", req.PatientPhone)
	if req.Notes != "" {
		description += fmt.Sprintf("\nNotes: %s", req.Notes)
	}

	input := calendar.EventInput{
		CalendarID:  s.calendarID,
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         end,
		TimeZone:    s.loc.String(),
	}
	if req.PatientEmail != "" {
		input.Attendees = []calendar.Attendee{{Email: req.PatientEmail}}
	}

	created, err := s.cal.CreateEvent(ctx, input)
	if err != nil {
		logger.Error("booking failed", logging.Err(err))
		return nil, fromCalendarError(err)
	}

	logger.Info("booking confirmed", logging.Status(logging.StatusSuccess), "event_id", created.ID)

	return &Confirmation{
		EventID: created.ID,
		Message: fmt.Sprintf("Appointment booked for %s at %s.",
			req.PatientName, start.In(s.loc).Format("03:04 PM")),
	}, nil
}

// resolveSlot turns a slot reference into a concrete [start, end) pair in the
// display timezone. The three messages cover the missing-start, bad-start,
// and bad-end cases, which differ between availability checks and booking.
func (s *Service) resolveSlot(ref SlotRef, missingMsg, badStartMsg, badEndMsg string) (time.Time, time.Time, *Error) {
	raw := ref.start()
	if raw == "" {
		return time.Time{}, time.Time{}, inputError(missingMsg)
	}

	start, ok := schedule.ParseTimestamp(raw, s.loc)
	if !ok {
		return time.Time{}, time.Time{}, inputError(badStartMsg)
	}

	if ref.EndTime == "" {
		return start, start.Add(s.duration), nil
	}

	end, ok := schedule.ParseTimestamp(ref.EndTime, s.loc)
	if !ok {
		return time.Time{}, time.Time{}, inputError(badEndMsg)
	}
	return start, end, nil
}

// listBusy fetches the day's events and folds them into the merged busy model.
func (s *Service) listBusy(ctx context.Context, dayStart, dayEnd time.Time) ([]schedule.Interval, error) {
	events, err := s.cal.ListEvents(ctx, s.calendarID, dayStart, dayEnd, listMaxResults)
	if err != nil {
		return nil, fromCalendarError(err)
	}

	raw := make([]schedule.RawEvent, 0, len(events))
	for _, ev := range events {
		raw = append(raw, schedule.RawEvent{Start: ev.Start.Value, End: ev.End.Value})
	}

	return schedule.BusyIntervals(raw, dayStart, dayEnd, s.loc, s.duration), nil
}
