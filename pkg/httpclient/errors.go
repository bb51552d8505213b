package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	MsgAuthExpired   = "credential invalid or expired, please re-enter"
	MsgNetwork       = "network error, please check your connection"
	MsgRequestConfig = "request configuration error"
)

// Error is the only error type Do returns.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

// ServerError is a response that carried an error status, either at the HTTP
// level or in the envelope code of a 2xx response.
type ServerError struct {
	Status  int
	Code    int
	Body    []byte
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// AuthExpiredError is a 401. The credential has already been cleared when it
// is returned.
type AuthExpiredError struct {
	Body []byte
}

func (e *AuthExpiredError) Error() string { return "server responded 401" }

// NetworkError means the request was sent but no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// RequestConfigError means the request never left the client.
type RequestConfigError struct {
	Err error
}

func (e *RequestConfigError) Error() string {
	if e.Err == nil {
		return MsgRequestConfig
	}
	return e.Err.Error()
}
func (e *RequestConfigError) Unwrap() error { return e.Err }

// normalize maps a failure variant to the message shown to the user.
func normalize(cause error) *Error {
	var (
		server  *ServerError
		auth    *AuthExpiredError
		network *NetworkError
		config  *RequestConfigError
	)
	switch {
	case errors.As(cause, &auth):
		return &Error{Message: MsgAuthExpired, Cause: cause}
	case errors.As(cause, &server):
		return &Error{Message: server.Message, Cause: cause}
	case errors.As(cause, &network):
		return &Error{Message: MsgNetwork, Cause: cause}
	case errors.As(cause, &config):
		msg := MsgRequestConfig
		if config.Err != nil && strings.TrimSpace(config.Err.Error()) != "" {
			msg = config.Err.Error()
		}
		return &Error{Message: msg, Cause: cause}
	default:
		return &Error{Message: MsgRequestConfig, Cause: &RequestConfigError{Err: cause}}
	}
}

// classifyTransport decides whether a resty execution error happened before
// or after the request went on the wire.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &NetworkError{Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Op == "parse" {
			return &RequestConfigError{Err: err}
		}
		return &NetworkError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &NetworkError{Err: err}
	}
	return &RequestConfigError{Err: err}
}

// ExtractMessage returns the first non-empty string among the body's error,
// msg and message fields.
func ExtractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"error", "msg", "message"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func statusMessage(body []byte, status int) string {
	if msg := ExtractMessage(body); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed (%d)", status)
}
