package reporters

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

type stubReporter struct {
	id     string
	err    error
	mu     sync.Mutex
	got    []Report
	closed bool
	block  chan struct{}
}

func (s *stubReporter) ID() string   { return s.id }
func (s *stubReporter) Type() string { return "stub" }

func (s *stubReporter) Report(_ context.Context, r Report) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, r)
	return s.err
}

func (s *stubReporter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubReporter) reports() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Report(nil), s.got...)
}

func TestFanoutReportsToAll(t *testing.T) {
	ok := &stubReporter{id: "ok"}
	bad := &stubReporter{id: "bad", err: errors.New("boom")}
	f := NewFanout([]Reporter{ok, nil, bad})

	if f.Size() != 2 {
		t.Fatalf("Size() = %d", f.Size())
	}

	n, err := f.Report(context.Background(), Report{ID: "r1"})
	if n != 1 {
		t.Fatalf("delivered = %d", n)
	}
	if err == nil || !strings.Contains(err.Error(), "stub reporter[bad]: boom") {
		t.Fatalf("err = %v", err)
	}
	if len(ok.reports()) != 1 || len(bad.reports()) != 1 {
		t.Fatalf("every reporter should be called")
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ok.closed || !bad.closed {
		t.Fatalf("reporters not closed")
	}
}

func TestFanoutNil(t *testing.T) {
	var f *Fanout
	if n, err := f.Report(context.Background(), Report{}); n != 0 || err != nil {
		t.Fatalf("nil fanout: %d, %v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil {
		t.Fatalf("nil fanout should be inert")
	}
}
