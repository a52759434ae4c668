package ingest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds the wait for the first connect event.
const DefaultConnectTimeout = 15 * time.Second

// serverDisconnect is the reason socket.io reports when the server closed the
// connection. The client does not reconnect after it.
const serverDisconnect = "io server disconnect"

// SocketIOConfig describes the subscription: URL plays the role of the broker
// address and Event the topic.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// SocketIOSource is a Source backed by a socket.io client.
type SocketIOSource struct {
	cfg     SocketIOConfig
	baseURL string
	path    string

	inbox chan Message
	out   chan Message
	done  chan struct{}
	once  sync.Once

	mu sync.Mutex
	io *socket.Socket
}

var _ Source = (*SocketIOSource)(nil)

// NewSocketIOSource validates cfg and returns an unconnected source.
func NewSocketIOSource(cfg SocketIOConfig) (*SocketIOSource, error) {
	if cfg.Event == "" {
		return nil, errors.New("socket.io event name is required")
	}
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q must include scheme and host", cfg.URL)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	s := &SocketIOSource{
		cfg:     cfg,
		baseURL: fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		path:    parsedURL.Path,
		inbox:   make(chan Message, 64),
		out:     make(chan Message),
		done:    make(chan struct{}),
	}
	go s.forward()
	return s, nil
}

// Connect dials the server, subscribes to the configured event and waits for
// the connection to be acknowledged.
func (s *SocketIOSource) Connect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("source", "socketio", "url", s.cfg.URL, "event", s.cfg.Event)
	logger.Info("Connecting to event stream...")

	opts := socket.DefaultOptions()
	opts.SetPath(s.path)
	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(s.baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)

	connectChan := make(chan error, 1)
	var connected sync.Once

	io.On(types.EventName("connect"), func(...any) {
		first := false
		connected.Do(func() { first = true })
		if first {
			connectChan <- nil
			return
		}
		logger.Info("Reconnected to event stream", "sid", io.Id())
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := eventError("connect_error", errs)
		first := false
		connected.Do(func() { first = true })
		if first {
			connectChan <- err
			return
		}
		s.deliver(Message{Err: err})
	})

	io.On(types.EventName("disconnect"), func(args ...any) {
		reason := ""
		if len(args) > 0 {
			reason, _ = args[0].(string)
		}
		if reason == serverDisconnect {
			logger.Warn("Server closed the event stream")
			s.finish()
			return
		}
		s.deliver(Message{Err: fmt.Errorf("disconnected: %s", reason)})
	})

	io.On(types.EventName(s.cfg.Event), func(args ...any) {
		var payload any
		if len(args) > 0 {
			payload = args[0]
		}
		s.deliver(Message{Payload: payload})
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(s.cfg.ConnectTimeout):
		io.Disconnect()
		return fmt.Errorf("timed out after %s waiting for socket.io connection", s.cfg.ConnectTimeout)
	}

	s.mu.Lock()
	s.io = io
	s.mu.Unlock()
	logger.Info("Subscribed to event stream", "sid", io.Id())
	return nil
}

// Messages returns the delivery channel.
func (s *SocketIOSource) Messages() <-chan Message {
	return s.out
}

// Close disconnects the client and closes the delivery channel.
func (s *SocketIOSource) Close() error {
	s.finish()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.io != nil {
		s.io.Disconnect()
		s.io = nil
	}
	return nil
}

// deliver hands m to the forwarder. It drops m once the source is finished,
// so late socket callbacks never block or panic.
func (s *SocketIOSource) deliver(m Message) {
	select {
	case s.inbox <- m:
	case <-s.done:
	}
}

func (s *SocketIOSource) finish() {
	s.once.Do(func() { close(s.done) })
}

// forward is the only writer of out, so it alone may close it.
func (s *SocketIOSource) forward() {
	defer close(s.out)
	for {
		select {
		case m := <-s.inbox:
			select {
			case s.out <- m:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func eventError(event string, args []any) error {
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			return err
		}
		return fmt.Errorf("%s: %v", event, args[0])
	}
	return errors.New(event)
}
