package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/easy-qfnu/portal-client/pkg/portal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultTrendDays    = 7
)

// Poller refreshes a Store from the stats endpoints at a fixed cadence.
type Poller struct {
	Store     *Store
	Fetcher   portal.StatsFetcher
	Interval  time.Duration
	TrendDays int
	Log       logger.Logger
}

// Start launches the refresh loop in the background and returns immediately.
// The first refresh happens right away.
func (p *Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			p.Refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh fetches the overview and the trend in parallel and records the
// outcome. A transport failure on either request fails the whole poll. A
// non-success code fails only its own part, so a broken trend endpoint never
// freezes the overview.
func (p *Poller) Refresh(ctx context.Context) error {
	days := p.TrendDays
	if days <= 0 {
		days = defaultTrendDays
	}

	var (
		dash  portal.Envelope[portal.DashboardData]
		trend portal.Envelope[[]portal.TrendData]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = p.Fetcher.Dashboard(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = p.Fetcher.Trend(gctx, days)
		return err
	})

	var poll Poll
	if err := g.Wait(); err != nil {
		poll.Err = err
	} else {
		if dash.OK() {
			poll.Dashboard = &dash.Data
		} else {
			poll.DashboardErr = envelopeError("dashboard", dash.Code, dash.Text())
		}
		if trend.OK() {
			poll.Trend = trend.Data
		} else {
			poll.TrendErr = envelopeError("trend", trend.Code, trend.Text())
		}
	}
	p.Store.Record(poll)

	err := poll.Err
	if err == nil {
		err = errors.Join(poll.DashboardErr, poll.TrendErr)
	}
	if err != nil {
		logger.Ensure(p.Log).WarnObj("stats poll failed", "stats_poll_error", map[string]any{
			"error": err.Error(),
		})
	}
	return err
}

func envelopeError(what string, code int, text string) error {
	if text == "" {
		return fmt.Errorf("%s responded code %d", what, code)
	}
	return fmt.Errorf("%s responded code %d: %s", what, code, text)
}
