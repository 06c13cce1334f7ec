package server

import (
	"context"
	"sync"

	"github.com/teemow/slotbooker/internal/booking"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	engine   *booking.Service
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context wrapping the booking engine
func NewServerContext(ctx context.Context, engine *booking.Service) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		engine: engine,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Engine returns the booking engine
func (sc *ServerContext) Engine() *booking.Service {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.engine
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context and closes the engine's backend
// session. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()

	if sc.engine != nil {
		return sc.engine.Close()
	}
	return nil
}
