package cmd

import (
	"fmt"
	"log/slog"

	"github.com/teemow/slotbooker/internal/booking"
	"github.com/teemow/slotbooker/internal/calendar"
	"github.com/teemow/slotbooker/internal/config"
)

// buildEngine wires the calendar client and booking engine from the
// environment config. The caller owns the engine and must Close it.
func buildEngine(logger *slog.Logger) (*booking.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	cal := calendar.New(calendar.Config{
		ServerURL: cfg.MCPServerURL,
		APIKey:    cfg.MCPAPIKey,
		Timeout:   cfg.MCPTimeout(),
		Version:   version,
		Logger:    logger,
	})

	engine, err := booking.NewService(cal, booking.Config{
		CalendarID:             cfg.CalendarID,
		Timezone:               cfg.Timezone,
		DefaultDurationMinutes: cfg.DefaultDurationMinutes,
		WorkdayStart:           cfg.DayStart,
		WorkdayEnd:             cfg.DayEnd,
		Logger:                 logger,
	})
	if err != nil {
		_ = cal.Close()
		return nil, nil, fmt.Errorf("failed to build booking engine: %w", err)
	}

	return engine, cfg, nil
}
