package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/slotbooker/internal/booking"
	"github.com/teemow/slotbooker/internal/logging"
)

func newBookCmd() *cobra.Command {
	var (
		debugMode    bool
		asJSON       bool
		endTime      string
		patientName  string
		patientPhone string
		patientEmail string
		notes        string
		doctor       string
	)

	cmd := &cobra.Command{
		Use:   "book <start-time>",
		Short: "Book an appointment slot",
		Long: `Book the slot starting at the given time (ISO 8601). The slot is
re-validated against the calendar before the event is created, so a slot
taken since it was listed fails with a conflict instead of double-booking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(os.Stderr, debugMode)

			engine, _, err := buildEngine(logger)
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			result, err := engine.BookSlot(context.Background(), booking.BookSlotRequest{
				SlotRef: booking.SlotRef{
					StartTime: args[0],
					EndTime:   endTime,
				},
				PatientName:  patientName,
				PatientPhone: patientPhone,
				PatientEmail: patientEmail,
				Notes:        notes,
				Doctor:       doctor,
			})
			if asJSON {
				return printEnvelope(booking.NewEnvelope(result, err))
			}
			if err != nil {
				return err
			}

			fmt.Println(result.Message)
			fmt.Printf("Event ID: %s\n", result.EventID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result envelope as JSON")
	cmd.Flags().StringVar(&endTime, "end", "", "Slot end time (ISO 8601). Defaults to start plus the slot duration.")
	cmd.Flags().StringVar(&patientName, "name", "", "Full name of the patient (required)")
	cmd.Flags().StringVar(&patientPhone, "phone", "", "Primary phone number for the patient (required)")
	cmd.Flags().StringVar(&patientEmail, "email", "", "Patient email address, added as an event attendee")
	cmd.Flags().StringVar(&notes, "notes", "", "Additional notes or reason for the visit")
	cmd.Flags().StringVar(&doctor, "doctor", "", "Doctor the appointment is booked with")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
