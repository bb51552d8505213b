package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	pathStatsDashboard = "/api/v1/stats/dashboard"
	pathStatsTrend     = "/api/v1/stats/trend"
)

// Envelope is the raw portal response. Stats callers inspect Code themselves.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
}

// OK reports a success code. Both 0 and 200 count as success on purpose:
// the API's shared success code is 0 while stats consumers have always
// checked for 200. A body with no code field decodes to 0 and passes too.
func (e Envelope[T]) OK() bool { return e.Code == 0 || e.Code == 200 }

// Text returns the first non-empty message field.
func (e Envelope[T]) Text() string {
	for _, s := range []string{e.Error, e.Msg, e.Message} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// StatsFetcher is implemented by *StatsClient and can be faked in tests.
type StatsFetcher interface {
	Dashboard(ctx context.Context) (Envelope[DashboardData], error)
	Trend(ctx context.Context, days int) (Envelope[[]TrendData], error)
}

var _ StatsFetcher = (*StatsClient)(nil)

// StatsClient reads the public stats endpoints. It sends no credential and
// raises no notifications.
type StatsClient struct {
	http *resty.Client
}

// NewStatsClient builds a client for baseURL.
func NewStatsClient(baseURL string, timeout time.Duration) *StatsClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeader("Accept", "application/json")
	return &StatsClient{http: c}
}

func (s *StatsClient) Dashboard(ctx context.Context) (Envelope[DashboardData], error) {
	var env Envelope[DashboardData]
	err := s.fetch(ctx, pathStatsDashboard, nil, &env)
	return env, err
}

// Trend returns per-day request counts for the last days days.
func (s *StatsClient) Trend(ctx context.Context, days int) (Envelope[[]TrendData], error) {
	if days <= 0 {
		days = 7
	}
	var env Envelope[[]TrendData]
	err := s.fetch(ctx, pathStatsTrend, map[string]string{"days": strconv.Itoa(days)}, &env)
	return env, err
}

func (s *StatsClient) fetch(ctx context.Context, path string, query map[string]string, out any) error {
	if s == nil {
		return fmt.Errorf("stats client is nil")
	}
	req := s.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s (status %d): %w", path, resp.StatusCode(), err)
	}
	return nil
}
