package reporters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "reporters.yaml", `
reporters:
  - id: " ops-hook "
    type: HTTP
    http:
      url: https://example.com/hook
      format: Feishu
      secret: s3cret
      headers:
        X-Empty: " "
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.example.com/q
      region: ap-east-1
      access_key_id: AKID
      secret_access_key: SECRET
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:ap-east-1:1:t
      region: ap-east-1
`)

	reg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := len(reg.All()); got != 3 {
		t.Fatalf("All() = %d entries", got)
	}

	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "ops-hook" || enabled[1].ID != "topic" {
		t.Fatalf("Enabled() = %+v", enabled)
	}

	hook, ok := reg.ByID("ops-hook")
	if !ok {
		t.Fatalf("ops-hook not found")
	}
	if hook.Type != TypeHTTP || hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %+v", hook.HTTP)
	}
	if hook.HTTP.Format != FormatFeishu || hook.HTTP.Headers != nil {
		t.Fatalf("http config not sanitized: %+v", hook.HTTP)
	}

	queue, _ := reg.ByID("queue")
	if queue.SQS.AccessKeyID != "AKID" || queue.SQS.Region != "ap-east-1" {
		t.Fatalf("inline aws auth not decoded: %+v", queue.SQS)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "reporters.json", `{"reporters":[{"id":"ps","type":"pubsub","pubsub":{"project_id":"p","topic":"t"}}]}`)

	reg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg, ok := reg.ByID("ps")
	if !ok || cfg.PubSub.ProjectID != "p" || cfg.PubSub.Topic != "t" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]struct {
		name string
		body string
		want string
	}{
		"empty":         {"r.yaml", "reporters: []", "no reporters"},
		"missing http":  {"r.yaml", "reporters:\n  - id: a\n    type: http", "http config required"},
		"bad format":    {"r.yaml", "reporters:\n  - id: a\n    type: http\n    http:\n      url: x\n      format: xml", "not supported"},
		"missing queue": {"r.yaml", "reporters:\n  - id: a\n    type: sqs\n    sqs:\n      region: r", "sqs.uri"},
		"missing arn":   {"r.yaml", "reporters:\n  - id: a\n    type: sns\n    sns:\n      region: r", "sns.topic_arn"},
		"missing topic": {"r.yaml", "reporters:\n  - id: a\n    type: pubsub\n    pubsub:\n      project_id: p", "pubsub.project_id"},
		"duplicate":     {"r.json", `{"reporters":[{"id":"a","type":"x"},{"id":"a","type":"x"}]}`, "duplicate"},
		"garbage":       {"r.json", "{", "not recognized"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.name, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}

	if _, err := LoadConfig(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseConfigFileUnknownExtension(t *testing.T) {
	out, err := parseConfigFile([]byte("reporters:\n  - id: a\n    type: http\n"), ".conf")
	if err != nil {
		t.Fatalf("parseConfigFile: %v", err)
	}
	if len(out.Reporters) != 1 {
		t.Fatalf("reporters = %+v", out.Reporters)
	}
}
