package cassette

import (
	"encoding/json"
	"fmt"
)

// EncodeResult serializes a fallible call's result into the Ok/Err
// envelope. err, if non-nil, is recorded as its Error() string; otherwise
// value is marshaled as the Ok payload.
func EncodeResult(value any, err error) (json.RawMessage, error) {
	if err != nil {
		msg := err.Error()
		return json.Marshal(struct {
			Err string `json:"Err"`
		}{Err: msg})
	}

	payload, marshalErr := json.Marshal(value)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal Ok payload: %w", marshalErr)
	}

	return json.Marshal(struct {
		Ok json.RawMessage `json:"Ok"`
	}{Ok: payload})
}

// EncodeValue serializes an infallible call's result as a bare payload.
func EncodeValue(value any) (json.RawMessage, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return payload, nil
}

// DecodeResult decodes output produced by EncodeResult into dst, honoring
// both the canonical and legacy-lowercase envelope tags. If the envelope
// carries an Err branch, DecodeResult returns an error built from that
// string and does not touch dst. If output is not an envelope object at
// all, it is decoded into dst directly (bare-payload fallback for
// infallible ports whose callers still route through DecodeResult).
func DecodeResult(output json.RawMessage, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(output, &raw); err == nil {
		if errMsg, ok := raw["Err"]; ok {
			return decodeEnvelopeError(errMsg)
		}
		if errMsg, ok := raw["err"]; ok {
			return decodeEnvelopeError(errMsg)
		}
		if okPayload, ok := raw["Ok"]; ok {
			return decodeInto(okPayload, dst)
		}
		if okPayload, ok := raw["ok"]; ok {
			return decodeInto(okPayload, dst)
		}
	}

	return decodeInto(output, dst)
}

func decodeEnvelopeError(msg json.RawMessage) error {
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return fmt.Errorf("failed to deserialize Err payload from cassette: %w", err)
	}
	return fmt.Errorf("%s", s)
}

func decodeInto(payload json.RawMessage, dst any) error {
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to deserialize payload from cassette: %w", err)
	}
	return nil
}
