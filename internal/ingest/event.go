package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Event is a decoded fact-creation record.
type Event struct {
	FactID    string `json:"fact_id" msgpack:"fact_id"`
	Subject   string `json:"subject,omitempty" msgpack:"subject,omitempty"`
	Predicate string `json:"predicate,omitempty" msgpack:"predicate,omitempty"`
	Object    string `json:"object,omitempty" msgpack:"object,omitempty"`
	Timestamp string `json:"timestamp,omitempty" msgpack:"timestamp,omitempty"`
	// Dependents is nil when the payload has no dependents field. An explicit
	// empty list decodes to a non-nil empty slice.
	Dependents []string `json:"dependents,omitempty" msgpack:"dependents,omitempty"`
}

var (
	errMissingFactID = errors.New("missing or empty fact_id")
	errNilPayload    = errors.New("nil payload")
)

// DecodeError reports a payload that could not be turned into an Event.
type DecodeError struct {
	// Kind is the payload representation: "string", "object", "json",
	// "msgpack" or the Go type name of an unsupported payload.
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s payload: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode turns a raw stream payload into an Event.
//
// Accepted payloads are JSON text (string), an already decoded JSON object
// (map[string]any), and binary data ([]byte or anything with a Bytes method)
// holding either a JSON object or a MessagePack map. fact_id must be a
// non-empty string; dependents, when present and not null, must be a list of
// strings. Every failure is a *DecodeError.
func Decode(payload any) (Event, error) {
	switch v := payload.(type) {
	case nil:
		return Event{}, &DecodeError{Kind: "nil", Err: errNilPayload}
	case string:
		return decodeJSON("string", []byte(v))
	case []byte:
		return decodeBinary(v)
	case interface{ Bytes() []byte }:
		return decodeBinary(v.Bytes())
	case map[string]any:
		ev, err := fromMap(v)
		if err != nil {
			return Event{}, &DecodeError{Kind: "object", Err: err}
		}
		return ev, nil
	default:
		return Event{}, &DecodeError{Kind: fmt.Sprintf("%T", payload), Err: errors.New("unsupported payload type")}
	}
}

func decodeBinary(b []byte) (Event, error) {
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeJSON("json", trimmed)
	}
	var raw map[string]any
	if err := msgpack.Unmarshal(b, &raw); err != nil {
		return Event{}, &DecodeError{Kind: "msgpack", Err: err}
	}
	ev, err := fromMap(raw)
	if err != nil {
		return Event{}, &DecodeError{Kind: "msgpack", Err: err}
	}
	return ev, nil
}

func decodeJSON(kind string, b []byte) (Event, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return Event{}, &DecodeError{Kind: kind, Err: err}
	}
	ev, err := fromMap(raw)
	if err != nil {
		return Event{}, &DecodeError{Kind: kind, Err: err}
	}
	return ev, nil
}

// fromMap validates the fields of a generic object. Unknown fields are
// ignored, as are descriptive fields of an unexpected type.
func fromMap(raw map[string]any) (Event, error) {
	id, ok := raw["fact_id"].(string)
	if !ok || id == "" {
		return Event{}, errMissingFactID
	}

	ev := Event{FactID: id}
	ev.Subject, _ = raw["subject"].(string)
	ev.Predicate, _ = raw["predicate"].(string)
	ev.Object, _ = raw["object"].(string)
	switch ts := raw["timestamp"].(type) {
	case string:
		ev.Timestamp = ts
	case nil:
	default:
		ev.Timestamp = fmt.Sprint(ts)
	}

	deps, err := stringList(raw["dependents"])
	if err != nil {
		return Event{}, fmt.Errorf("dependents: %w", err)
	}
	ev.Dependents = deps
	return ev, nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append(make([]string, 0, len(list)), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not a string", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}
