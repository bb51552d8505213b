package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/easy-qfnu/portal-client/pkg/portal"
)

// Snapshot is the latest stats data available to the UI.
type Snapshot struct {
	Data        portal.DashboardData
	HasData     bool
	Trend       []portal.TrendData
	LastUpdated time.Time
	// LastError joins the failures of the latest poll.
	LastError error
	// ConsecutiveFailures counts polls in a row whose overview failed.
	ConsecutiveFailures int
	// TrendError is set while the trend keeps the data of an earlier poll.
	TrendError    error
	TrendFailures int
}

// IsOffline reports that the stats endpoint has failed several polls in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Poll is the outcome of one refresh. Err fails the whole poll; otherwise
// each part is applied or counted as failed on its own.
type Poll struct {
	Dashboard    *portal.DashboardData
	DashboardErr error
	Trend        []portal.TrendData
	TrendErr     error
	Err          error
}

// Store coordinates concurrent snapshot updates from the poller.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// Update records a poll that either fully succeeded or fully failed. When err
// is non-nil the previous data is kept and the failure is counted.
func (s *Store) Update(data *portal.DashboardData, trend []portal.TrendData, err error) {
	s.Record(Poll{Dashboard: data, Trend: trend, Err: err})
}

// Record applies p. A failed part keeps its previous data.
func (s *Store) Record(p Poll) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.snapshot.LastUpdated = now()

	dashErr, trendErr := p.DashboardErr, p.TrendErr
	if p.Err != nil {
		dashErr, trendErr = p.Err, p.Err
	}

	if dashErr != nil {
		s.snapshot.ConsecutiveFailures++
	} else {
		if p.Dashboard != nil {
			s.snapshot.Data = cloneDashboard(*p.Dashboard)
			s.snapshot.HasData = true
		}
		s.snapshot.ConsecutiveFailures = 0
	}

	if trendErr != nil {
		s.snapshot.TrendError = trendErr
		s.snapshot.TrendFailures++
	} else {
		s.snapshot.Trend = cloneTrend(p.Trend)
		s.snapshot.TrendError = nil
		s.snapshot.TrendFailures = 0
	}

	switch {
	case p.Err != nil:
		s.snapshot.LastError = p.Err
	default:
		s.snapshot.LastError = errors.Join(p.DashboardErr, p.TrendErr)
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneDashboard(s.snapshot.Data)
	snap.Trend = cloneTrend(s.snapshot.Trend)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.TrendError != nil {
		snap.TrendError = fmt.Errorf("%w", s.snapshot.TrendError)
	}
	return snap
}

func cloneDashboard(d portal.DashboardData) portal.DashboardData {
	d.APIStats = append([]portal.APIStat(nil), d.APIStats...)
	d.StatusCodeStats = append([]portal.StatusCodeStat(nil), d.StatusCodeStats...)
	d.TopKeywords = append([]portal.KeywordStat(nil), d.TopKeywords...)
	return d
}

func cloneTrend(items []portal.TrendData) []portal.TrendData {
	if len(items) == 0 {
		return nil
	}
	dup := make([]portal.TrendData, len(items))
	copy(dup, items)
	return dup
}
