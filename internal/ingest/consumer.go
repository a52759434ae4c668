package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/nodeid"
)

// Graph is the part of graph.Graph the consumer writes to.
type Graph interface {
	AddNode(ctx context.Context, id string, dependents []string) error
	PropagateInvalidation(ctx context.Context, id string) nodeid.Set
}

// Consumer applies stream events to a Graph.
type Consumer struct {
	id     string
	source Source
	graph  Graph
}

// NewConsumer creates a consumer with a unique identifier used in logs.
func NewConsumer(source Source, g Graph) *Consumer {
	return &Consumer{
		id:     "causalcore-" + uuid.NewString(),
		source: source,
		graph:  g,
	}
}

// ID returns the consumer identifier.
func (c *Consumer) ID() string {
	return c.id
}

// Run connects the source and processes messages until ctx is cancelled, in
// which case it closes the source and returns nil. It returns the connect
// error if the subscription cannot be established, and ErrSourceClosed if the
// stream ends on its own.
func (c *Consumer) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctx, "consumer_id", c.id)
	logger := ctxlog.FromContext(ctx)

	if err := c.source.Connect(ctx); err != nil {
		return fmt.Errorf("connect source: %w", err)
	}
	defer c.source.Close()
	logger.Info("Consumer started.")

	messages := c.source.Messages()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Consumer stopping.", "reason", context.Cause(ctx))
			return nil
		case msg, ok := <-messages:
			if !ok {
				logger.Warn("Event stream closed.")
				return ErrSourceClosed
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg Message) {
	logger := ctxlog.FromContext(ctx)

	if msg.Err != nil {
		eventsTotal.WithLabelValues(resultStreamError).Inc()
		logger.Warn("Event stream error.", "error", msg.Err)
		return
	}

	ev, err := Decode(msg.Payload)
	if err != nil {
		eventsTotal.WithLabelValues(resultDecodeError).Inc()
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			logger.Warn("Skipping malformed event.", "kind", decodeErr.Kind, "error", decodeErr.Err)
		} else {
			logger.Warn("Skipping malformed event.", "error", err)
		}
		return
	}

	logger = logger.With("fact_id", ev.FactID)
	if ev.Dependents != nil {
		if err := c.graph.AddNode(ctx, ev.FactID, ev.Dependents); err != nil {
			eventsTotal.WithLabelValues(resultDecodeError).Inc()
			logger.Warn("Rejected fact.", "error", err)
			return
		}
	}

	invalidated := c.graph.PropagateInvalidation(ctx, ev.FactID)
	eventsTotal.WithLabelValues(resultOK).Inc()
	logger.Info("Fact processed.", "subject", ev.Subject, "predicate", ev.Predicate, "invalidated", invalidated.Len())
	logger.Debug("Invalidated facts.", "ids", invalidated.Sorted())
}
