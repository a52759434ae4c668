package ingest

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by Consumer.Run when the source stops
// delivering messages on its own.
var ErrSourceClosed = errors.New("ingest: source closed")

// Message is one delivery from a Source: either a payload or a transient
// stream error.
type Message struct {
	Payload any
	Err     error
}

// Source is an event stream subscription.
type Source interface {
	// Connect establishes the subscription. An error here is fatal.
	Connect(ctx context.Context) error
	// Messages returns the delivery channel. It is closed when the stream
	// ends or after Close.
	Messages() <-chan Message
	// Close releases the subscription. It is safe to call more than once.
	Close() error
}
