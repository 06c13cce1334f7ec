package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/slotbooker/internal/booking"
	"github.com/teemow/slotbooker/internal/logging"
)

func newCheckCmd() *cobra.Command {
	var (
		debugMode bool
		asJSON    bool
		slotID    string
		endTime   string
	)

	cmd := &cobra.Command{
		Use:   "check <start-time>",
		Short: "Check whether a specific slot is still free",
		Long: `Check whether the slot starting at the given time (ISO 8601) is still
free. Naive timestamps are interpreted in the configured timezone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(os.Stderr, debugMode)

			engine, _, err := buildEngine(logger)
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			result, err := engine.CheckAvailability(context.Background(), booking.CheckAvailabilityRequest{
				SlotRef: booking.SlotRef{
					SlotID:    slotID,
					StartTime: args[0],
					EndTime:   endTime,
				},
			})
			if asJSON {
				return printEnvelope(booking.NewEnvelope(result, err))
			}
			if err != nil {
				return err
			}

			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result envelope as JSON")
	cmd.Flags().StringVar(&slotID, "slot-id", "", "Slot identifier to include in the availability message")
	cmd.Flags().StringVar(&endTime, "end", "", "Slot end time (ISO 8601). Defaults to start plus the slot duration.")

	return cmd
}
