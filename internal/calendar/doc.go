// Package calendar provides a client for a remote calendar backend exposed as
// an MCP server over SSE.
//
// The client owns a single lazily-created MCP session. Session creation is
// serialized so concurrent callers never open more than one connection, and a
// failed handshake discards all partial state so the next call retries from
// scratch. Close is idempotent and safe to call when no session exists.
//
// Example usage:
//
//	client := calendar.New(calendar.Config{
//	    ServerURL: "http://127.0.0.1:9079",
//	    Timeout:   10 * time.Second,
//	})
//	defer client.Close()
//
//	events, err := client.ListEvents(ctx, "primary", timeMin, timeMax, 250)
package calendar
