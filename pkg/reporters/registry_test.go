package reporters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/easy-qfnu/portal-client/internal/logger"
)

func stubBuilder(rep *stubReporter) Builder {
	return func(_ context.Context, cfg ReporterConfig, _ logger.Logger) (Reporter, error) {
		if rep != nil {
			return rep, nil
		}
		return &stubReporter{id: cfg.ID}, nil
	}
}

func TestBuildersBuildByType(t *testing.T) {
	b := Builders{"stub": stubBuilder(nil)}

	rep, err := b.Build(context.Background(), ReporterConfig{ID: "a", Type: " Stub "}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.ID() != "a" {
		t.Fatalf("ID() = %s", rep.ID())
	}

	if _, err := b.Build(context.Background(), ReporterConfig{ID: "b"}, nil); err == nil {
		t.Fatalf("expected error for missing type")
	}
	_, err = b.Build(context.Background(), ReporterConfig{ID: "c", Type: "kafka"}, nil)
	if err == nil || !strings.Contains(err.Error(), `"c"`) {
		t.Fatalf("unknown type error = %v", err)
	}
}

func TestBuildersOpenClosesOnFailure(t *testing.T) {
	built := &stubReporter{id: "first"}
	b := Builders{
		"ok": stubBuilder(built),
		"bad": func(context.Context, ReporterConfig, logger.Logger) (Reporter, error) {
			return nil, errors.New("no credentials")
		},
	}

	fan, err := b.Open(context.Background(), []ReporterConfig{{ID: "1", Type: "ok"}, {ID: "2", Type: "bad"}}, nil)
	if err == nil || fan != nil {
		t.Fatalf("Open = %v, %v; want failure", fan, err)
	}
	if !strings.Contains(err.Error(), `reporter "2": no credentials`) {
		t.Fatalf("err = %v", err)
	}
	if !built.closed {
		t.Fatalf("reporters built before the failure should be closed")
	}
}

func TestBuildersOpen(t *testing.T) {
	b := Builders{"stub": stubBuilder(nil)}

	fan, err := b.Open(context.Background(), []ReporterConfig{{ID: "1", Type: "stub"}, {ID: "2", Type: "stub"}}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if fan.Size() != 2 {
		t.Fatalf("Size() = %d", fan.Size())
	}

	empty, err := b.Open(context.Background(), nil, nil)
	if err != nil || empty.Size() != 0 {
		t.Fatalf("empty Open = %v, %v", empty, err)
	}
}

func TestDefaultBuildersKnowHTTP(t *testing.T) {
	rep, err := DefaultBuilders().Build(context.Background(), sanitizeReporterConfig(ReporterConfig{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPConfig{URL: "http://127.0.0.1:1"},
	}), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Type() != TypeHTTP {
		t.Fatalf("Type() = %s", rep.Type())
	}
}
