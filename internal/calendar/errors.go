package calendar

import "fmt"

// SessionError indicates the MCP session could not be established. The
// client discards all partial session state before returning one, so the next
// call retries the connection from scratch.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("calendar session: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// ToolError indicates a backend tool call failed, either at the protocol
// level or as a result flagged isError. Message carries the backend's own
// error text verbatim.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("calendar tool %q: %s", e.Tool, e.Message)
}
