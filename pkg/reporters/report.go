package reporters

import (
	"errors"
	"time"

	"github.com/easy-qfnu/portal-client/pkg/httpclient"
	"github.com/google/uuid"
)

// Failure kinds carried by a Report.
const (
	KindServer      = "server"
	KindAuthExpired = "auth_expired"
	KindNetwork     = "network"
	KindConfig      = "config"
	KindUnknown     = "unknown"
)

// Report describes one failed portal request.
type Report struct {
	ID         string    `json:"id"`
	Source     string    `json:"source,omitempty"`
	Kind       string    `json:"kind"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status,omitempty"`
	Code       int       `json:"code,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewReport builds a Report from a normalized client failure.
func NewReport(source string, req httpclient.Request, status int, failure *httpclient.Error, now time.Time) Report {
	r := Report{
		ID:         uuid.NewString(),
		Source:     source,
		Kind:       KindUnknown,
		Method:     req.Method,
		Path:       req.Path,
		Status:     status,
		OccurredAt: now.UTC(),
	}
	if failure == nil {
		return r
	}
	r.Message = failure.Message

	var (
		server  *httpclient.ServerError
		auth    *httpclient.AuthExpiredError
		network *httpclient.NetworkError
		config  *httpclient.RequestConfigError
	)
	switch {
	case errors.As(failure, &auth):
		r.Kind = KindAuthExpired
	case errors.As(failure, &server):
		r.Kind = KindServer
		r.Code = server.Code
	case errors.As(failure, &network):
		r.Kind = KindNetwork
		r.Detail = network.Error()
	case errors.As(failure, &config):
		r.Kind = KindConfig
		r.Detail = config.Error()
	}
	return r
}
