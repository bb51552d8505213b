package reporters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/easy-qfnu/portal-client/pkg/httpclient"
)

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	stub := &stubReporter{id: "s"}
	d := NewDispatcher(NewFanout([]Reporter{stub}), 8, nil)

	for i := 0; i < 3; i++ {
		if !d.Enqueue(Report{ID: string(rune('a' + i))}) {
			t.Fatalf("Enqueue %d rejected", i)
		}
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := stub.reports()
	if len(got) != 3 || got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("delivered %+v", got)
	}
	if !stub.closed {
		t.Fatalf("reporter not closed")
	}
	if d.Enqueue(Report{}) {
		t.Fatalf("Enqueue after Close should be rejected")
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	stub := &stubReporter{id: "s", block: make(chan struct{})}
	d := NewDispatcher(NewFanout([]Reporter{stub}), 1, nil)

	// The worker takes the first report and blocks in the reporter; the
	// second fills the queue.
	if !d.Enqueue(Report{ID: "1"}) {
		t.Fatalf("first Enqueue rejected")
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(d.queue) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !d.Enqueue(Report{ID: "2"}) {
		t.Fatalf("second Enqueue rejected")
	}
	if d.Enqueue(Report{ID: "3"}) {
		t.Fatalf("third Enqueue should be dropped")
	}

	close(stub.block)
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := stub.reports(); len(got) != 2 {
		t.Fatalf("delivered %d reports", len(got))
	}
}

func TestDispatcherCloseHonoursContext(t *testing.T) {
	stub := &stubReporter{id: "s", block: make(chan struct{})}
	defer close(stub.block)
	d := NewDispatcher(NewFanout([]Reporter{stub}), 1, nil)
	d.Enqueue(Report{ID: "1"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Close err = %v", err)
	}
}

func TestDispatcherHookBuildsReport(t *testing.T) {
	stub := &stubReporter{id: "s"}
	d := NewDispatcher(NewFanout([]Reporter{stub}), 4, nil)

	hook := d.Hook("dashboard")
	hook(httpclient.Request{Method: "GET", Path: "/api/v1/stats"}, 401,
		&httpclient.Error{Message: httpclient.MsgAuthExpired, Cause: &httpclient.AuthExpiredError{}})

	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got := stub.reports()
	if len(got) != 1 {
		t.Fatalf("delivered %d reports", len(got))
	}
	if got[0].Source != "dashboard" || got[0].Kind != KindAuthExpired || got[0].Status != 401 {
		t.Fatalf("report = %+v", got[0])
	}
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	if d.Enqueue(Report{}) || d.Size() != 0 || d.Close(context.Background()) != nil {
		t.Fatalf("nil dispatcher should be inert")
	}
}

func TestOpenBuildsEnabledReporters(t *testing.T) {
	path := writeConfig(t, "reporters.yaml", `
reporters:
  - id: hook
    type: http
    http:
      url: http://127.0.0.1:1/hook
  - id: off
    type: kafka
    enabled: false
`)
	d, err := Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close(context.Background())
	if d.Size() != 1 {
		t.Fatalf("Size() = %d", d.Size())
	}
}
