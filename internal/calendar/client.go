package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/slotbooker/internal/logging"
)

// DefaultTimeout is applied to each remote call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

const clientName = "slotbooker"

// Config holds the connection settings for the calendar MCP backend.
type Config struct {
	// ServerURL is the base URL of the MCP server. The /sse suffix is
	// appended when not already present.
	ServerURL string

	// APIKey, when set, is sent as an Authorization bearer credential.
	APIKey string

	// Timeout bounds each remote call. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Version is reported to the backend during the initialize handshake.
	Version string

	Logger *slog.Logger
}

// Client talks to the calendar MCP backend. It owns at most one live session,
// created on first use and reused by every subsequent call.
type Client struct {
	endpoint string
	headers  map[string]string
	timeout  time.Duration
	version  string
	logger   *slog.Logger

	// ctx spans the client's lifetime; Close cancels it so in-flight calls
	// are abandoned promptly.
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	sess *mcpclient.Client
}

// New creates a Client. No connection is opened until the first call.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.ServerURL, "/")
	endpoint := base
	if !strings.HasSuffix(strings.ToLower(base), "/sse") {
		endpoint = base + "/sse"
	}

	var headers map[string]string
	if cfg.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		endpoint: endpoint,
		headers:  headers,
		timeout:  timeout,
		version:  cfg.Version,
		logger:   logging.WithService(logger, "calendar"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Endpoint returns the resolved SSE endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ensureSession returns the live session, creating it when absent. Creation is
// serialized under the client mutex so concurrent callers share one session.
// A failed transport start or initialize handshake tears down everything that
// was built so far; nothing half-initialized is ever cached.
func (c *Client) ensureSession(ctx context.Context) (*mcpclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != nil {
		return c.sess, nil
	}

	var opts []transport.ClientOption
	if c.headers != nil {
		opts = append(opts, transport.WithHeaders(c.headers))
	}

	sess, err := mcpclient.NewSSEMCPClient(c.endpoint, opts...)
	if err != nil {
		return nil, &SessionError{Err: err}
	}

	// The transport's lifetime is bound to the client context, not the
	// calling operation, so the stream outlives individual requests.
	if err := sess.Start(c.ctx); err != nil {
		_ = sess.Close()
		return nil, &SessionError{Err: err}
	}

	initCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: c.version,
	}

	if _, err := sess.Initialize(initCtx, initReq); err != nil {
		_ = sess.Close()
		return nil, &SessionError{Err: err}
	}

	c.logger.Debug("calendar session established", "endpoint", c.endpoint)
	c.sess = sess
	return sess, nil
}

// Close tears down the session if one exists and abandons in-flight calls.
// It is idempotent and a no-op when no session was ever created.
func (c *Client) Close() error {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()

	c.cancel()

	if sess == nil {
		return nil
	}
	if err := sess.Close(); err != nil {
		c.logger.Debug("calendar session close", logging.Err(err))
	}
	return nil
}

// callTool invokes a backend tool on the shared session with the configured
// per-call timeout and normalizes protocol failures and isError results into
// the package's error types.
func (c *Client) callTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	sess, err := c.ensureSession(ctx)
	if err != nil {
		c.logger.Error("calendar session unavailable", logging.Tool(name), logging.Err(err))
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := sess.CallTool(callCtx, req)
	if err != nil {
		c.logger.Error("calendar tool call failed", logging.Tool(name), logging.Err(err))
		return nil, &ToolError{Tool: name, Message: err.Error()}
	}

	if res.IsError {
		msg := textContent(res.Content)
		if msg == "" {
			msg = fmt.Sprintf("tool %q returned an error", name)
		}
		c.logger.Error("calendar tool returned error", logging.Tool(name), "message", msg)
		return nil, &ToolError{Tool: name, Message: msg}
	}

	return res, nil
}

// ListEvents fetches the events between timeMin and timeMax from the given
// calendar.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int) ([]Event, error) {
	res, err := c.callTool(ctx, "list_events", map[string]any{
		"calendar_id": calendarID,
		"time_min":    timeMin.Format(time.RFC3339),
		"time_max":    timeMax.Format(time.RFC3339),
		"max_results": maxResults,
	})
	if err != nil {
		return nil, err
	}

	return decodeEvents(structuredJSON(res)), nil
}

// CreateEvent creates a calendar event and returns the backend's record of it.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error) {
	args := map[string]any{
		"calendar_id": input.CalendarID,
		"summary":     input.Summary,
		"description": input.Description,
		"start": map[string]any{
			"value":     input.Start.Format(time.RFC3339),
			"time_zone": input.TimeZone,
		},
		"end": map[string]any{
			"value":     input.End.Format(time.RFC3339),
			"time_zone": input.TimeZone,
		},
	}
	if len(input.Attendees) > 0 {
		args["attendees"] = input.Attendees
	}

	res, err := c.callTool(ctx, "create_event", args)
	if err != nil {
		return nil, err
	}

	return decodeCreatedEvent(structuredJSON(res)), nil
}
