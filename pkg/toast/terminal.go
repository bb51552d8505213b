package toast

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const cardWidth = 48

// TerminalSurface draws entries with lipgloss. When out is set each entry is
// printed once on attach, which suits one-shot commands; View renders the
// current stack for full-screen programs.
type TerminalSurface struct {
	mu    sync.Mutex
	out   io.Writer
	items []Element
}

// NewTerminalSurface creates a surface. out may be nil.
func NewTerminalSurface(out io.Writer) *TerminalSurface {
	return &TerminalSurface{out: out}
}

func (s *TerminalSurface) Attach(el Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, el)
	if s.out != nil {
		fmt.Fprintln(s.out, Render(el))
	}
}

func (s *TerminalSurface) SetPhase(id uint64, p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Phase = p
			return
		}
	}
}

func (s *TerminalSurface) Detach(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Elements returns a copy of the attached elements, oldest first.
func (s *TerminalSurface) Elements() []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Element(nil), s.items...)
}

// View renders the attached stack, oldest at the top.
func (s *TerminalSurface) View() string {
	items := s.Elements()
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(items))
	for _, el := range items {
		rendered = append(rendered, Render(el))
	}
	return strings.Join(rendered, "\n")
}

// ElementAt returns the element drawn at column x, row y of View.
func (s *TerminalSurface) ElementAt(x, y int) (uint64, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	row := 0
	for _, el := range s.Elements() {
		rendered := Render(el)
		h := lipgloss.Height(rendered)
		if y < row+h {
			if x >= lipgloss.Width(rendered) {
				return 0, false
			}
			return el.ID, true
		}
		row += h
	}
	return 0, false
}

// Render draws one element. Leaving elements are dimmed.
func Render(el Element) string {
	color := lipgloss.Color(el.Color)
	content := el.Glyph + " " + el.Message

	if el.Variant == VariantPlain {
		style := lipgloss.NewStyle().Foreground(color)
		if el.Phase >= PhaseLeave {
			style = style.Faint(true)
		}
		return style.Render(content)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(cardWidth)
	if el.Phase >= PhaseLeave {
		style = style.Faint(true)
	}
	return style.Render(content)
}
