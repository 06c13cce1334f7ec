// Package cmd implements the command-line interface for slotbooker.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the appointment booking tools
//   - slots: List available appointment slots for a date
//   - check: Check whether a specific slot is still free
//   - book: Book an appointment slot
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
