package reporters

import (
	"context"
	"fmt"
	"strings"

	"github.com/easy-qfnu/portal-client/internal/logger"
)

// Builder constructs a Reporter from one registry entry. ctx bounds setup I/O
// such as AWS credential resolution or dialing Pub/Sub.
type Builder func(ctx context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error)

// Builders maps a lower-case reporter type to its constructor.
type Builders map[string]Builder

// DefaultBuilders covers every type a registry file may declare.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:   newHTTPReporter,
		TypeSQS:    newSQSReporter,
		TypeSNS:    newSNSReporter,
		TypePubSub: newPubSubReporter,
	}
}

// Build constructs the reporter for cfg.
func (b Builders) Build(ctx context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	typ := strings.ToLower(strings.TrimSpace(cfg.Type))
	if typ == "" {
		return nil, fmt.Errorf("reporter %q has no type configured", cfg.ID)
	}
	build, ok := b[typ]
	if !ok || build == nil {
		return nil, fmt.Errorf("reporter %q: unknown type %q", cfg.ID, cfg.Type)
	}
	rep, err := build(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("reporter %q: %w", cfg.ID, err)
	}
	return rep, nil
}

// Open builds every entry into one Fanout. If any entry fails, the reporters
// already built are closed and no Fanout is returned.
func (b Builders) Open(ctx context.Context, cfgs []ReporterConfig, log logger.Logger) (*Fanout, error) {
	fan := NewFanout(nil)
	for _, cfg := range cfgs {
		rep, err := b.Build(ctx, cfg, log)
		if err != nil {
			_ = fan.Close()
			return nil, err
		}
		if rep != nil {
			fan.reporters = append(fan.reporters, rep)
		}
	}
	return fan, nil
}
