package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func mustMsgpack(t *testing.T, v any) []byte {
	t.Helper()
	b, err := msgpack.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		payload  any
		expected Event
	}{
		{
			name:    "json string with every field",
			payload: `{"fact_id":"f1","subject":"alice","predicate":"knows","object":"bob","timestamp":"2024-01-01T00:00:00Z"}`,
			expected: Event{
				FactID:    "f1",
				Subject:   "alice",
				Predicate: "knows",
				Object:    "bob",
				Timestamp: "2024-01-01T00:00:00Z",
			},
		},
		{
			name:     "json string with dependents",
			payload:  `{"fact_id":"A","dependents":["B","C"]}`,
			expected: Event{FactID: "A", Dependents: []string{"B", "C"}},
		},
		{
			name:     "explicit empty dependents",
			payload:  `{"fact_id":"A","dependents":[]}`,
			expected: Event{FactID: "A", Dependents: []string{}},
		},
		{
			name:     "null dependents are absent",
			payload:  `{"fact_id":"A","dependents":null}`,
			expected: Event{FactID: "A"},
		},
		{
			name:     "numeric timestamp",
			payload:  `{"fact_id":"A","timestamp":1700000000}`,
			expected: Event{FactID: "A", Timestamp: "1.7e+09"},
		},
		{
			name:     "decoded object",
			payload:  map[string]any{"fact_id": "A", "dependents": []any{"B"}, "extra": 42},
			expected: Event{FactID: "A", Dependents: []string{"B"}},
		},
		{
			name:     "json bytes",
			payload:  []byte(`  {"fact_id":"A"}`),
			expected: Event{FactID: "A"},
		},
		{
			name:     "buffer",
			payload:  bytes.NewBufferString(`{"fact_id":"A","subject":"s"}`),
			expected: Event{FactID: "A", Subject: "s"},
		},
		{
			name:     "msgpack bytes",
			payload:  mustMsgpack(t, map[string]any{"fact_id": "A", "dependents": []string{"B", "C"}}),
			expected: Event{FactID: "A", Dependents: []string{"B", "C"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Decode(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ev)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		payload any
		kind    string
	}{
		{name: "nil", payload: nil, kind: "nil"},
		{name: "not json", payload: "hello", kind: "string"},
		{name: "missing fact_id", payload: `{"subject":"x"}`, kind: "string"},
		{name: "empty fact_id", payload: `{"fact_id":""}`, kind: "string"},
		{name: "numeric fact_id", payload: map[string]any{"fact_id": 7.0}, kind: "object"},
		{name: "dependents not a list", payload: `{"fact_id":"A","dependents":"B"}`, kind: "string"},
		{name: "dependents with a number", payload: `{"fact_id":"A","dependents":["B",1]}`, kind: "string"},
		{name: "broken json bytes", payload: []byte(`{"fact_id":`), kind: "json"},
		{name: "garbage bytes", payload: []byte{0xc1}, kind: "msgpack"},
		{name: "msgpack without fact_id", payload: mustMsgpack(t, map[string]any{"x": 1}), kind: "msgpack"},
		{name: "unsupported type", payload: 42, kind: "int"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.payload)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tc.kind, decodeErr.Kind)
			assert.NotNil(t, decodeErr.Unwrap())
		})
	}
}
