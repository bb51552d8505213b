package httpclient

import (
	"context"
	"encoding/json"
)

// Credentials is the credential cell read before every request.
type Credentials interface {
	Credential() string
	Clear()
}

// Notifier surfaces a failure message to the user.
type Notifier interface {
	NotifyError(message string)
}

// Doer abstracts the portal egress so callers can inject fakes.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// FailureHook observes every normalized failure after the user was notified.
type FailureHook func(req Request, status int, err *Error)
