package app

import (
	"bytes"
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/causalcore/internal/hcl"
	"github.com/specialistvlad/causalcore/internal/ingest"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// setupAppTest creates an app with debug logging captured in a buffer.
// Set CAUSALCORE_TEST_LOGS=true to print the logs of every test.
func setupAppTest(t *testing.T, cfg *Config, opts ...Option) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	testApp, err := NewApp(logBuffer, cfg, hcl.NewLoader(), opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("CAUSALCORE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}

// chanSource is an ingest.Source fed by the test.
type chanSource struct {
	connectErr error
	ch         chan ingest.Message
	closed     atomic.Bool
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan ingest.Message)}
}

func (s *chanSource) Connect(context.Context) error   { return s.connectErr }
func (s *chanSource) Messages() <-chan ingest.Message { return s.ch }
func (s *chanSource) Close() error {
	s.closed.Store(true)
	return nil
}
