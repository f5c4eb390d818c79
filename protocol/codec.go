package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyMessage  = errors.New("empty message")
	ErrEmptyPayload  = errors.New("empty payload")
	ErrUnknownFormat = errors.New("unknown format")
)

type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// Binary reports whether the format needs binary websocket frames.
func (f Format) Binary() bool {
	return f == FormatMsgpack
}

// the wire shape differs per format so the payload stays inline
type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type msgpackEnvelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p"`
}

func Encode(t string, payload any) ([]byte, error) {
	return EncodeAs(FormatJSON, t, payload)
}

func EncodeAs(f Format, t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty type")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload for %q", t)
	}
	switch f {
	case FormatJSON:
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		return json.Marshal(jsonEnvelope{T: t, P: pb})
	case FormatMsgpack:
		pb, err := msgpack.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		return msgpack.Marshal(&msgpackEnvelope{T: t, P: pb})
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	return DecodeEnvelopeAs(FormatJSON, b)
}

func DecodeEnvelopeAs(f Format, b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	switch f {
	case FormatJSON:
		var e jsonEnvelope
		if err := json.Unmarshal(b, &e); err != nil {
			return Envelope{}, fmt.Errorf("decode envelope: %w", err)
		}
		return Envelope{T: e.T, P: e.P, format: f}, nil
	case FormatMsgpack:
		var e msgpackEnvelope
		if err := msgpack.Unmarshal(b, &e); err != nil {
			return Envelope{}, fmt.Errorf("decode envelope: %w", err)
		}
		return Envelope{T: e.T, P: e.P, format: f}, nil
	}
	return Envelope{}, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

// DecodePayload unpacks the payload of env into a T using the format the
// envelope was decoded with.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w for type %q", ErrEmptyPayload, env.T)
	}
	var err error
	switch env.format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(env.P, &out)
	default:
		err = json.Unmarshal(env.P, &out)
	}
	if err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.T, err)
	}
	return out, nil
}
