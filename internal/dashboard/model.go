// Package dashboard is the terminal stats dashboard: a poller keeps a
// snapshot fresh and a Bubble Tea model renders it.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/easy-qfnu/portal-client/internal/prefs"
	"github.com/easy-qfnu/portal-client/pkg/present"
	"github.com/easy-qfnu/portal-client/pkg/toast"
)

// Notification texts.
const (
	msgPollFailed      = "stats refresh failed: "
	msgTrendFailed     = "trend refresh failed: "
	msgRecovered       = "stats service is back online"
	msgPrefsSaveFailed = "could not save theme preference"
)

const (
	defaultTick = time.Second
	frameTick   = 100 * time.Millisecond
	rankingRows = 10
)

// Options configures the dashboard model.
type Options struct {
	Context context.Context
	Store   *Store
	// Refresh forces an immediate poll; nil disables the refresh key.
	Refresh   func(context.Context) error
	Toasts    *toast.Center
	Surface   *toast.TerminalSurface
	Theme     string
	PrefsPath string
	Tick      time.Duration
	Now       func() time.Time
	Log       logger.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	store     *Store
	refresh   func(context.Context) error
	toasts    *toast.Center
	surface   *toast.TerminalSurface
	prefsPath string
	tick      time.Duration
	now       func() time.Time
	log       logger.Logger

	theme  Theme
	keys   keyMap
	width  int
	height int

	snapshot          Snapshot
	seenFailures      int
	seenTrendFailures int
	wasOffline        bool
	// hovered is the toast under the pointer, 0 when none.
	hovered uint64

	spinner  spinner.Model
	apiTable table.Model
	kwTable  table.Model
}

type (
	tickMsg      time.Time
	frameMsg     time.Time
	snapshotMsg  Snapshot
	refreshedMsg struct{ err error }
)

// New creates the dashboard model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	store := opts.Store
	if store == nil {
		store = &Store{}
	}
	toasts := opts.Toasts
	surface := opts.Surface
	if toasts == nil {
		surface = toast.NewTerminalSurface(nil)
		toasts = toast.NewCenter(toast.WithSurface(func() toast.Surface { return surface }))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		store:     store,
		refresh:   opts.Refresh,
		toasts:    toasts,
		surface:   surface,
		prefsPath: prefsPath,
		tick:      tick,
		now:       now,
		log:       logger.Ensure(opts.Log),
		theme:     GetTheme(opts.Theme),
		keys:      defaultKeyMap(),
		spinner:   sp,
		apiTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 3},
				{Title: "Endpoint", Width: 32},
				{Title: "Calls", Width: 8},
				{Title: "Latency", Width: 7},
			}),
			table.WithHeight(rankingRows+1),
		),
		kwTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 3},
				{Title: "Keyword", Width: 20},
				{Title: "Searches", Width: 8},
			}),
			table.WithHeight(rankingRows+1),
		),
	}
	m.applyTableStyles()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.tick),
		m.spinner.Tick,
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(m.tick), fetchSnapshotCmd(m.store))

	case frameMsg:
		if m.surface != nil && len(m.surface.Elements()) > 0 {
			return m, frameCmd()
		}
		return m, nil

	case snapshotMsg:
		return m, m.applySnapshot(Snapshot(msg))

	case refreshedMsg:
		return m, fetchSnapshotCmd(m.store)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		next := prefs.Prefs{Theme: m.theme.Name}.Toggle()
		m.theme = GetTheme(next.Theme)
		m.applyTableStyles()
		if err := prefs.Save(m.prefsPath, next); err != nil {
			m.log.WarnObj("save prefs failed", "prefs_error", map[string]any{
				"path":  m.prefsPath,
				"error": err.Error(),
			})
			m.toasts.Warning(msgPrefsSaveFailed)
			return m, frameCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.toasts.DismissNewest() {
			return m, frameCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh == nil {
			return m, nil
		}
		return m, refreshCmd(m.ctx, m.refresh)
	}
	return m, nil
}

// handleMouse holds the toast under the pointer and releases the one it left.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.surface == nil {
		return m, nil
	}
	var id uint64
	if top := m.toastTop(); msg.Y >= top {
		id, _ = m.surface.ElementAt(msg.X, msg.Y-top)
	}
	if id == m.hovered {
		return m, nil
	}
	if m.hovered != 0 {
		m.toasts.Unhover(m.toasts.Entry(m.hovered))
	}
	if id != 0 {
		m.toasts.Hover(m.toasts.Entry(id))
	}
	m.hovered = id
	return m, nil
}

// applySnapshot stores snap and raises a toast for each newly failed poll and
// once when an offline endpoint recovers.
func (m *Model) applySnapshot(snap Snapshot) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case snap.ConsecutiveFailures > m.seenFailures && snap.LastError != nil:
		m.toasts.Error(msgPollFailed + snap.LastError.Error())
		cmd = frameCmd()
	case snap.TrendFailures > m.seenTrendFailures && snap.TrendError != nil:
		m.toasts.Warning(msgTrendFailed + snap.TrendError.Error())
		cmd = frameCmd()
	case m.wasOffline && snap.ConsecutiveFailures == 0:
		m.toasts.Success(msgRecovered)
		cmd = frameCmd()
	}
	m.seenFailures = snap.ConsecutiveFailures
	m.seenTrendFailures = snap.TrendFailures
	m.wasOffline = snap.IsOffline()
	m.snapshot = snap
	m.updateTables()
	return cmd
}

func (m *Model) updateTables() {
	apis := m.snapshot.Data.APIStats
	if len(apis) > rankingRows {
		apis = apis[:rankingRows]
	}
	apiRows := make([]table.Row, 0, len(apis))
	for i, a := range apis {
		apiRows = append(apiRows, table.Row{
			itoa(i + 1),
			a.Path,
			present.FormatNumber(a.Count),
			formatLatency(a.AvgLatency),
		})
	}
	m.apiTable.SetRows(apiRows)

	kws := m.snapshot.Data.TopKeywords
	if len(kws) > rankingRows {
		kws = kws[:rankingRows]
	}
	kwRows := make([]table.Row, 0, len(kws))
	for i, k := range kws {
		kwRows = append(kwRows, table.Row{itoa(i + 1), k.Keyword, present.FormatNumber(k.SearchCount)})
	}
	m.kwTable.SetRows(kwRows)
}

func (m *Model) applyTableStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Muted)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = s.Cell
	m.apiTable.SetStyles(s)
	m.kwTable.SetStyles(s)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameTick, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func fetchSnapshotCmd(store *Store) tea.Cmd {
	return func() tea.Msg { return snapshotMsg(store.Snapshot()) }
}

func refreshCmd(ctx context.Context, refresh func(context.Context) error) tea.Cmd {
	return func() tea.Msg { return refreshedMsg{err: refresh(ctx)} }
}
