package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSocketIOSource_Validation(t *testing.T) {
	testCases := []struct {
		name string
		cfg  SocketIOConfig
	}{
		{name: "missing event", cfg: SocketIOConfig{URL: "http://localhost:3000/socket.io/"}},
		{name: "unparseable url", cfg: SocketIOConfig{URL: "http://[::1", Event: "e"}},
		{name: "relative url", cfg: SocketIOConfig{URL: "/socket.io/", Event: "e"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSocketIOSource(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewSocketIOSource_Defaults(t *testing.T) {
	s, err := NewSocketIOSource(SocketIOConfig{URL: "https://events.example.com/socket.io/", Event: "narrative.facts.created"})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "https://events.example.com", s.baseURL)
	assert.Equal(t, "/socket.io/", s.path)
	assert.Equal(t, "/", s.cfg.Namespace)
	assert.Equal(t, DefaultConnectTimeout, s.cfg.ConnectTimeout)
}

func TestSocketIOSource_DeliverAndClose(t *testing.T) {
	s, err := NewSocketIOSource(SocketIOConfig{URL: "http://localhost:3000/socket.io/", Event: "e"})
	require.NoError(t, err)

	go s.deliver(Message{Payload: "first"})
	select {
	case m := <-s.Messages():
		assert.Equal(t, "first", m.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("message was not forwarded")
	}

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close is idempotent")

	select {
	case _, ok := <-s.Messages():
		assert.False(t, ok, "channel must be closed")
	case <-time.After(5 * time.Second):
		t.Fatal("channel was not closed")
	}

	// Late callbacks after Close must neither block nor panic.
	s.deliver(Message{Payload: "late"})
}

func TestSocketIOSource_ConnectFailure(t *testing.T) {
	s, err := NewSocketIOSource(SocketIOConfig{
		URL:            "http://127.0.0.1:1/socket.io/",
		Event:          "e",
		ConnectTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	defer s.Close()

	err = s.Connect(context.Background())
	assert.Error(t, err)
}
