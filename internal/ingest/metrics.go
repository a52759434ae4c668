package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event results.
const (
	resultOK          = "ok"
	resultDecodeError = "decode_error"
	resultStreamError = "stream_error"
)

// eventsTotal counts messages taken off the stream.
// Labels: result (ok, decode_error, stream_error)
var eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "causalcore",
	Subsystem: "ingest",
	Name:      "events_total",
	Help:      "Total stream messages processed by result",
}, []string{"result"})
