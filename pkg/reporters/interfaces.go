package reporters

import "context"

// Reporter delivers failure reports to a remote sink.
type Reporter interface {
	ID() string
	Type() string
	Report(ctx context.Context, r Report) error
}
