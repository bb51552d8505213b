package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/easy-qfnu/portal-client/pkg/present"
)

const barWidth = 24

// View implements tea.Model.
func (m Model) View() string {
	st := m.theme.Styles()

	sections := m.bodySections(st)
	if m.surface != nil {
		if toasts := m.surface.View(); toasts != "" {
			sections = append(sections, toasts)
		}
	}
	sections = append(sections, m.renderHelp(st))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// toastTop is the screen row where the toast stack starts.
func (m Model) toastTop() int {
	return lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, m.bodySections(m.theme.Styles())...))
}

func (m Model) bodySections(st Styles) []string {
	return []string{
		m.renderHeader(st),
		m.renderCards(st),
		lipgloss.JoinHorizontal(lipgloss.Top,
			st.Panel.Render(m.renderStatusCodes(st)),
			" ",
			st.Panel.Render(m.renderTrend(st)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			st.Panel.Render(st.Header.Render("Top endpoints")+"\n"+m.rankingOrEmpty(st, m.apiTable.View(), len(m.snapshot.Data.APIStats))),
			" ",
			st.Panel.Render(st.Header.Render("Top keywords")+"\n"+m.rankingOrEmpty(st, m.kwTable.View(), len(m.snapshot.Data.TopKeywords))),
		),
	}
}

func (m Model) renderHeader(st Styles) string {
	title := st.Title.Render("Easy QFNU stats")
	snap := m.snapshot

	var status string
	switch {
	case snap.IsOffline():
		status = st.Danger.Render("● offline") + " " + st.Muted.Render("retrying...")
	case !snap.HasData && snap.LastError == nil:
		status = m.spinner.View() + st.Muted.Render(" connecting...")
	case snap.LastError != nil:
		status = st.Danger.Render("● refresh failed")
	default:
		status = st.Success.Render("● online")
	}
	if !snap.LastUpdated.IsZero() {
		status += "  " + st.Muted.Render("updated "+snap.LastUpdated.Format("15:04"))
	}
	return title + "  " + status
}

func (m Model) renderCards(st Styles) string {
	d := m.snapshot.Data
	uptime := "--:--:--"
	if d.StartTime > 0 {
		uptime = present.FormatUptime(time.Unix(d.StartTime, 0), m.now())
	}

	card := func(label, value string) string {
		return st.Card.Render(st.Muted.Render(label) + "\n" + st.CardValue.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total requests", present.FormatNumber(d.TotalRequests)),
		card("Today", present.FormatNumber(d.TodayRequests)),
		card("Unique IPs", present.FormatNumber(d.UniqueIPs)),
		card("Avg latency", formatLatency(d.AvgLatencyMs)),
		card("Uptime", uptime),
	)
}

func (m Model) renderStatusCodes(st Styles) string {
	stats := m.snapshot.Data.StatusCodeStats
	lines := []string{st.Header.Render("Status codes")}
	if len(stats) == 0 {
		return strings.Join(append(lines, st.Muted.Render("no data")), "\n")
	}

	var total, max int64
	for _, s := range stats {
		total += s.Count
		if s.Count > max {
			max = s.Count
		}
	}
	for _, s := range stats {
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(StatusCodeColor(s.StatusCode)))
		pct := 0.0
		if total > 0 {
			pct = float64(s.Count) / float64(total) * 100
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			color.Bold(true).Render(strconv.Itoa(s.StatusCode)),
			color.Render(bar(s.Count, max, barWidth)),
			st.Text.Render(present.FormatNumber(s.Count)),
			st.Muted.Render(fmt.Sprintf("(%.1f%%)", pct)),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTrend(st Styles) string {
	trend := m.snapshot.Trend
	lines := []string{st.Header.Render("Request trend")}
	if m.snapshot.TrendError != nil {
		lines = append(lines, st.Danger.Render("not updated, last refresh failed"))
	}
	if len(trend) == 0 {
		return strings.Join(append(lines, st.Muted.Render("no data")), "\n")
	}

	var max int64
	for _, t := range trend {
		if t.Count > max {
			max = t.Count
		}
	}
	for _, t := range trend {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			st.Muted.Render(trendLabel(t.Date)),
			st.Accent.Render(bar(t.Count, max, barWidth)),
			st.Text.Render(strconv.FormatInt(t.Count, 10)+" calls"),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) rankingOrEmpty(st Styles, view string, n int) string {
	if n == 0 {
		return st.Muted.Render("no data")
	}
	return view
}

func (m Model) renderHelp(st Styles) string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.help() {
		if b.Help().Key == "r" && m.refresh == nil {
			continue
		}
		parts = append(parts, helpEntry(b))
	}
	return st.Muted.Render(strings.Join(parts, " · "))
}

func helpEntry(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// bar renders value as a proportion of max using width cells. Non-zero values
// always get at least one cell.
func bar(value, max int64, width int) string {
	if max <= 0 || value <= 0 || width <= 0 {
		return strings.Repeat("·", width)
	}
	n := int(float64(value) / float64(max) * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("·", width-n)
}

// trendLabel turns "2025-01-07" into "01/07".
func trendLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[1] + "/" + parts[2]
}

func formatLatency(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 0, 64) + "ms"
}

func itoa(i int) string { return strconv.Itoa(i) }
