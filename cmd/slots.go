package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/slotbooker/internal/booking"
	"github.com/teemow/slotbooker/internal/logging"
)

func newSlotsCmd() *cobra.Command {
	var (
		debugMode bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "slots <date>",
		Short: "List available appointment slots for a date",
		Long: `List the free appointment slots for the given date (YYYY-MM-DD),
computed from the calendar's busy intervals within the configured workday.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(os.Stderr, debugMode)

			engine, _, err := buildEngine(logger)
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			result, err := engine.FetchSlots(context.Background(), booking.FetchSlotsRequest{Date: args[0]})
			if asJSON {
				return printEnvelope(booking.NewEnvelope(result, err))
			}
			if err != nil {
				return err
			}

			if len(result.Slots) == 0 {
				fmt.Printf("No free slots found on %s.\n", args[0])
				return nil
			}
			for _, slot := range result.Slots {
				fmt.Printf("%-24s %s (%s)\n", slot.ID, slot.Label, slot.Timezone)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result envelope as JSON")

	return cmd
}

func printEnvelope(env booking.Envelope) error {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
