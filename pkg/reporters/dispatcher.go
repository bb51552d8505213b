package reporters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/easy-qfnu/portal-client/pkg/httpclient"
)

const (
	// DefaultQueueSize bounds reports waiting for delivery.
	DefaultQueueSize = 64
	// DefaultReportTimeout bounds one fan-out round.
	DefaultReportTimeout = 10 * time.Second
)

// Dispatcher delivers reports off the request path. Reports are dropped when
// the queue is full; there are no retries.
type Dispatcher struct {
	fanout  *Fanout
	queue   chan Report
	log     logger.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts a worker draining into fanout. size <= 0 uses
// DefaultQueueSize.
func NewDispatcher(fanout *Fanout, size int, log logger.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	d := &Dispatcher{
		fanout:  fanout,
		queue:   make(chan Report, size),
		log:     logger.Ensure(log),
		timeout: DefaultReportTimeout,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Open loads the reporters file, builds every enabled reporter and starts a
// dispatcher over them.
func Open(ctx context.Context, path string, log logger.Logger) (*Dispatcher, error) {
	cfgs, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	fan, err := DefaultBuilders().Open(ctx, cfgs.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build reporters: %w", err)
	}
	return NewDispatcher(fan, DefaultQueueSize, log), nil
}

// Enqueue queues r without blocking. It reports whether r was accepted.
func (d *Dispatcher) Enqueue(r Report) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- r:
		return true
	default:
		d.log.WarnObj("report queue full, dropping report", "reporter_drop", map[string]any{
			"report_id": r.ID,
			"kind":      r.Kind,
		})
		return false
	}
}

// Hook adapts the dispatcher to the client's failure hook.
func (d *Dispatcher) Hook(source string) httpclient.FailureHook {
	return func(req httpclient.Request, status int, err *httpclient.Error) {
		d.Enqueue(NewReport(source, req, status, err, time.Now()))
	}
}

// Size returns the number of reporters behind the dispatcher.
func (d *Dispatcher) Size() int {
	if d == nil {
		return 0
	}
	return d.fanout.Size()
}

// Close stops accepting reports, drains the queue and releases reporters.
// It returns ctx.Err() if draining outlives ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return d.fanout.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for r := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		n, err := d.fanout.Report(ctx, r)
		cancel()
		if err != nil {
			d.log.WarnObj("report delivery failed", "reporter_error", map[string]any{
				"report_id": r.ID,
				"delivered": n,
				"error":     err.Error(),
			})
		}
	}
}
