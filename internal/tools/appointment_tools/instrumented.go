package appointment_tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/slotbooker/internal/server"
)

// instrumented wraps a tool handler with invocation metrics. Handler errors
// and error results both count as failures.
func instrumented(
	toolName string,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)

		status := "success"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}

		server.ToolInvocations.WithLabelValues(toolName, status).Inc()
		server.ToolDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())

		return result, err
	}
}
