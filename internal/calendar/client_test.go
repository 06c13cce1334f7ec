package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EndpointNormalization(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare base url", "http://127.0.0.1:9079", "http://127.0.0.1:9079/sse"},
		{"trailing slash", "http://127.0.0.1:9079/", "http://127.0.0.1:9079/sse"},
		{"already sse", "http://127.0.0.1:9079/sse", "http://127.0.0.1:9079/sse"},
		{"sse uppercase", "http://127.0.0.1:9079/SSE", "http://127.0.0.1:9079/SSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Config{ServerURL: tt.url})
			defer func() { _ = c.Close() }()
			assert.Equal(t, tt.want, c.Endpoint())
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{ServerURL: "http://localhost:9079"})
	defer func() { _ = c.Close() }()

	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Nil(t, c.headers)
}

func TestNew_BearerHeader(t *testing.T) {
	c := New(Config{ServerURL: "http://localhost:9079", APIKey: "secret"})
	defer func() { _ = c.Close() }()

	require.NotNil(t, c.headers)
	assert.Equal(t, "Bearer secret", c.headers["Authorization"])
}

func TestClose_IdempotentWithoutSession(t *testing.T) {
	c := New(Config{ServerURL: "http://localhost:9079", Timeout: time.Second})

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestEnsureSession_FailureDiscardsPartialState(t *testing.T) {
	// A backend that rejects the SSE stream outright: every attempt must
	// fail with a session error and cache nothing.
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{ServerURL: srv.URL, Timeout: time.Second})
	defer func() { _ = c.Close() }()

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ensureSession(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.Error(t, err)
		var sessionErr *SessionError
		assert.ErrorAs(t, err, &sessionErr)
	}

	c.mu.Lock()
	assert.Nil(t, c.sess, "a failed handshake must not leave a cached session")
	c.mu.Unlock()

	// The next call starts from scratch and dials again.
	before := hits.Load()
	_, err := c.ensureSession(context.Background())
	require.Error(t, err)
	assert.Greater(t, hits.Load(), before, "a later call must re-attempt session creation")
}

func TestEnsureSession_ConcurrentCallersShareOneSession(t *testing.T) {
	// Unroutable endpoint: any dial attempt would fail, so every returned
	// session must be the one already cached.
	c := New(Config{ServerURL: "http://127.0.0.1:1", Timeout: time.Second})

	existing := &mcpclient.Client{}
	c.mu.Lock()
	c.sess = existing
	c.mu.Unlock()
	defer func() {
		// The placeholder has no transport to close.
		c.mu.Lock()
		c.sess = nil
		c.mu.Unlock()
		_ = c.Close()
	}()

	const workers = 8
	sessions := make(chan *mcpclient.Client, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := c.ensureSession(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			sessions <- sess
		}()
	}
	wg.Wait()
	close(sessions)

	count := 0
	for sess := range sessions {
		assert.Same(t, existing, sess)
		count++
	}
	assert.Equal(t, workers, count)
}
