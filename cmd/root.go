package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the slotbooker application
var rootCmd = &cobra.Command{
	Use:   "slotbooker",
	Short: "Appointment slot booking engine backed by a calendar MCP server",
	Long: `slotbooker turns a calendar into bookable appointment slots. It fetches
events from a calendar MCP backend, derives the free slots of a workday,
re-validates a slot at booking time, and creates the appointment event.

It can run as:
  - An MCP (Model Context Protocol) server for AI assistants (default)
  - A standalone CLI for listing, checking, and booking slots`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "slotbooker version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSlotsCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newBookCmd())
	rootCmd.AddCommand(newVersionCmd())
}
