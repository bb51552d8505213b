package present

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var questionTypeColors = map[string]string{
	"单选题": "primary",
	"多选题": "info",
	"判断题": "success",
	"填空题": "warning",
}

// QuestionTypeClass colours a question type badge.
func QuestionTypeClass(typ string) string {
	color, ok := questionTypeColors[typ]
	if !ok {
		color = "primary"
	}
	return "bg-" + color + "/10 text-" + color
}

// AnnouncementClass styles a banner by its type.
func AnnouncementClass(typ string) string {
	switch typ {
	case "warning":
		return "bg-yellow-50 border-yellow-200 text-yellow-800"
	case "error":
		return "bg-red-50 border-red-200 text-red-800"
	default:
		return "bg-blue-50 border-blue-200 text-blue-800"
	}
}

const highlightReplacement = `<mark class="bg-warning/30 text-warning px-0.5 rounded">$1</mark>`

// HighlightKeyword wraps every case-insensitive occurrence of keyword in a
// <mark>. The keyword is matched literally.
func HighlightKeyword(text, keyword string) string {
	if text == "" || keyword == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(keyword) + `)`)
	return re.ReplaceAllString(text, highlightReplacement)
}

// FormatTime renders a unix timestamp (seconds) in loc.
func FormatTime(unix int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(unix, 0).In(loc).Format("2006-01-02 15:04")
}

// FormatNumber abbreviates large counts: 1.2M, 3.4W (ten-thousands), 5.6K.
func FormatNumber(n int64) string {
	v := float64(n)
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%.1fW", v/10_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatUptime renders the time since start as "HH:MM:SS", prefixed with
// "N天 " once a day has passed. A zero or future start renders "--:--:--".
func FormatUptime(start, now time.Time) string {
	if start.IsZero() || now.Before(start) {
		return "--:--:--"
	}
	total := int64(now.Sub(start).Seconds())
	days := total / 86400
	clock := fmt.Sprintf("%02d:%02d:%02d", (total%86400)/3600, (total%3600)/60, total%60)
	if days > 0 {
		return fmt.Sprintf("%d天 %s", days, clock)
	}
	return clock
}

// PlainText strips markup from announcement content, keeping paragraph and
// line breaks.
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
