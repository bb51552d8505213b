package reporters

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Fanout delivers each report to every configured reporter.
type Fanout struct {
	reporters []Reporter
}

// NewFanout builds a fanout over reporters, skipping nils.
func NewFanout(reps []Reporter) *Fanout {
	cp := make([]Reporter, 0, len(reps))
	for _, r := range reps {
		if r == nil {
			continue
		}
		cp = append(cp, r)
	}
	return &Fanout{reporters: cp}
}

// Report forwards r to every reporter.
// It returns the number of reporters that accepted the report.
func (f *Fanout) Report(ctx context.Context, r Report) (int, error) {
	if f == nil || len(f.reporters) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, rep := range f.reporters {
		if err := rep.Report(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("%s reporter[%s]: %w", rep.Type(), rep.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active reporters.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.reporters)
}

// Close releases reporters that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, rep := range f.reporters {
		if c, ok := rep.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s reporter[%s]: %w", rep.Type(), rep.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
