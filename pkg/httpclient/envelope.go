package httpclient

import (
	"bytes"
	"encoding/json"
)

// successCodes are the envelope codes the portal uses for success.
var successCodes = map[int]bool{0: true, 200: true}

// unwrapEnvelope returns the data payload of a 2xx body. Bodies that are not
// an envelope are returned whole. A non-success envelope code is reported as a
// ServerError.
func unwrapEnvelope(status int, body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return json.RawMessage(trimmed), nil
	}

	if rawCode, ok := env["code"]; ok {
		var code int
		if err := json.Unmarshal(rawCode, &code); err == nil && !successCodes[code] {
			return nil, &ServerError{
				Status:  status,
				Code:    code,
				Body:    body,
				Message: statusMessage(body, code),
			}
		}
	}

	data, ok := env["data"]
	if !ok {
		return json.RawMessage(trimmed), nil
	}
	return data, nil
}

// Decode unmarshals a payload returned by Do into T. A null or empty payload
// leaves the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return out, nil
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
