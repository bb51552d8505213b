package toast

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalSurface_writes_on_attach(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminalSurface(&buf)

	s.Attach(newElement(1, "login ok", SeveritySuccess, VariantPlain))

	assert.Contains(t, buf.String(), "✓ login ok")
}

func TestTerminalSurface_tracks_phases_and_detach(t *testing.T) {
	s := NewTerminalSurface(nil)
	s.Attach(newElement(1, "a", SeverityInfo, VariantCard))
	s.Attach(newElement(2, "b", SeverityError, VariantCard))

	s.SetPhase(2, PhaseLeave)
	els := s.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, PhaseLeave, els[1].Phase)

	assert.True(t, s.Detach(1))
	assert.False(t, s.Detach(1))
	assert.Len(t, s.Elements(), 1)
}

func TestTerminalSurface_View_stacks_oldest_first(t *testing.T) {
	s := NewTerminalSurface(nil)
	assert.Equal(t, "", s.View())

	s.Attach(newElement(1, "first", SeverityInfo, VariantCard))
	s.Attach(newElement(2, "second", SeverityWarning, VariantCard))

	view := s.View()
	assert.Less(t, strings.Index(view, "first"), strings.Index(view, "second"))
}

func TestTerminalSurface_with_center(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	surface := NewTerminalSurface(nil)
	c := NewCenter(WithScheduler(clock), WithSurface(func() Surface { return surface }))

	c.Warning("term not found")
	assert.Contains(t, surface.View(), "term not found")

	clock.Advance(DefaultDuration + DefaultLeaveDelay)
	assert.Equal(t, "", surface.View())
}

func TestTerminalSurface_ElementAt(t *testing.T) {
	s := NewTerminalSurface(nil)
	s.Attach(newElement(1, "first", SeverityInfo, VariantCard))
	s.Attach(newElement(2, "second", SeverityInfo, VariantPlain))

	cardHeight := strings.Count(Render(s.Elements()[0]), "\n") + 1

	id, ok := s.ElementAt(0, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	id, ok = s.ElementAt(3, cardHeight-1)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)

	id, ok = s.ElementAt(0, cardHeight)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), id)

	_, ok = s.ElementAt(40, cardHeight)
	assert.False(t, ok, "past the end of a plain line")
	_, ok = s.ElementAt(0, cardHeight+1)
	assert.False(t, ok)
	_, ok = s.ElementAt(-1, 0)
	assert.False(t, ok)
}

func TestParseSeverityAndVariant(t *testing.T) {
	assert.Equal(t, SeverityWarning, ParseSeverity(" Warning "))
	assert.Equal(t, SeverityInfo, ParseSeverity(""))
	assert.Equal(t, VariantPlain, ParseVariant("PLAIN"))
	assert.Equal(t, VariantCard, ParseVariant("anything"))
	assert.Equal(t, "leave-active", PhaseLeaveActive.String())
	assert.Equal(t, "dismissing", StateDismissing.String())
}
