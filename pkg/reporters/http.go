package reporters

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/go-resty/resty/v2"
)

type httpReporter struct {
	id      string
	method  string
	url     string
	headers map[string]string
	format  string
	secret  string
	client  *resty.Client
	log     logger.Logger
	now     func() time.Time
}

func newHTTPReporter(_ context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("reporter %q missing http configuration", cfg.ID)
	}

	client := resty.New().SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &httpReporter{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		format:  cfg.HTTP.Format,
		secret:  cfg.HTTP.Secret,
		client:  client,
		log:     logger.Ensure(log),
		now:     time.Now,
	}, nil
}

func (h *httpReporter) ID() string   { return h.id }
func (h *httpReporter) Type() string { return TypeHTTP }

func (h *httpReporter) Report(ctx context.Context, r Report) error {
	var body any = r
	if h.format == FormatFeishu {
		card, err := h.feishuPayload(r)
		if err != nil {
			return err
		}
		body = card
	}

	req := h.client.R().
		SetContext(ctx).
		SetBody(body)
	if len(h.headers) > 0 {
		req.SetHeaders(h.headers)
	}
	req.SetHeader("Content-Type", "application/json")

	resp, err := req.Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	if h.format == FormatFeishu {
		if err := checkFeishuResponse(resp.Body()); err != nil {
			return err
		}
	}
	h.log.DebugObj("http reporter delivered report", "reporter_http_delivery", map[string]any{
		"reporter_id": h.id,
		"report_id":   r.ID,
	})
	return nil
}

// feishuPayload renders r as an interactive card. When a secret is set the
// payload carries timestamp and sign fields.
func (h *httpReporter) feishuPayload(r Report) (map[string]any, error) {
	payload := map[string]any{
		"msg_type": "interactive",
		"card":     feishuCard(r),
	}
	if h.secret == "" {
		return payload, nil
	}
	ts := h.now().Unix()
	sign, err := feishuSign(ts, h.secret)
	if err != nil {
		return nil, fmt.Errorf("sign feishu payload: %w", err)
	}
	payload["timestamp"] = strconv.FormatInt(ts, 10)
	payload["sign"] = sign
	return payload, nil
}

// feishuSign is HMAC-SHA256 keyed by "timestamp\nsecret" over an empty
// message, base64 encoded.
func feishuSign(ts int64, secret string) (string, error) {
	key := strconv.FormatInt(ts, 10) + "\n" + secret
	mac := hmac.New(sha256.New, []byte(key))
	if _, err := mac.Write(nil); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func feishuCard(r Report) map[string]any {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s %s**\n\n", r.Method, r.Path)
	fmt.Fprintf(&b, "- **kind**: %s\n", r.Kind)
	if r.Status != 0 {
		fmt.Fprintf(&b, "- **status**: %d\n", r.Status)
	}
	if r.Code != 0 {
		fmt.Fprintf(&b, "- **code**: %d\n", r.Code)
	}
	fmt.Fprintf(&b, "- **message**: %s\n", r.Message)
	if r.Detail != "" {
		fmt.Fprintf(&b, "- **detail**: %s\n", r.Detail)
	}

	title := "portal request failed"
	if r.Source != "" {
		title = r.Source + ": " + title
	}

	return map[string]any{
		"header": map[string]any{
			"title":    map[string]any{"tag": "plain_text", "content": title},
			"template": feishuColor(r.Kind),
		},
		"elements": []any{
			map[string]any{"tag": "markdown", "content": b.String()},
			map[string]any{"tag": "hr"},
			map[string]any{
				"tag": "note",
				"elements": []any{
					map[string]any{"tag": "plain_text", "content": r.OccurredAt.Format("2006-01-02 15:04:05") + " UTC · " + r.ID},
				},
			},
		},
	}
}

func feishuColor(kind string) string {
	switch kind {
	case KindServer, KindNetwork:
		return "red"
	case KindAuthExpired, KindConfig:
		return "orange"
	default:
		return "blue"
	}
}

// checkFeishuResponse treats a non-zero "code" in a 2xx reply as a failure.
func checkFeishuResponse(body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var result struct {
		Code *int   `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode feishu response: %w", err)
	}
	if result.Code != nil && *result.Code != 0 {
		return fmt.Errorf("feishu responded code %d: %s", *result.Code, result.Msg)
	}
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
