package toast

import "strings"

// Severity selects the icon and colour of an entry.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity maps free text to a Severity. Unknown values become info.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeveritySuccess:
		return SeveritySuccess
	case SeverityError:
		return SeverityError
	case SeverityWarning:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// Style is how one severity is drawn.
type Style struct {
	Icon  string // plain variant glyph
	Emoji string // card variant glyph
	Color string
}

var styles = map[Severity]Style{
	SeveritySuccess: {Icon: "✓", Emoji: "✅", Color: "#34C759"},
	SeverityError:   {Icon: "✕", Emoji: "❌", Color: "#FF3B30"},
	SeverityWarning: {Icon: "!", Emoji: "⚠️", Color: "#FF9500"},
	SeverityInfo:    {Icon: "i", Emoji: "ℹ️", Color: "#007AFF"},
}

// Presentation returns the style for sev, falling back to info.
func Presentation(sev Severity) Style {
	if s, ok := styles[sev]; ok {
		return s
	}
	return styles[SeverityInfo]
}

// Variant picks between the two toast renderings.
type Variant int

const (
	// VariantCard pauses on hover.
	VariantCard Variant = iota
	// VariantPlain ignores hover.
	VariantPlain
)

// ParseVariant maps "plain" to VariantPlain; everything else is a card.
func ParseVariant(s string) Variant {
	if strings.EqualFold(strings.TrimSpace(s), "plain") {
		return VariantPlain
	}
	return VariantCard
}

func (v Variant) String() string {
	if v == VariantPlain {
		return "plain"
	}
	return "card"
}

// Phase is the animation class applied to a rendered entry.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseEnterActive
	PhaseLeave
	PhaseLeaveActive
)

func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseEnterActive:
		return "enter-active"
	case PhaseLeave:
		return "leave"
	case PhaseLeaveActive:
		return "leave-active"
	default:
		return "unknown"
	}
}

// State is an entry's lifecycle position.
type State int

const (
	StatePending State = iota
	StateActive
	StateDismissing
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateDismissing:
		return "dismissing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Element is what a Surface renders for one entry.
type Element struct {
	ID       uint64
	Message  string
	Severity Severity
	Variant  Variant
	Glyph    string
	Color    string
	Phase    Phase
}

func newElement(id uint64, msg string, sev Severity, v Variant) Element {
	st := Presentation(sev)
	glyph := st.Emoji
	if v == VariantPlain {
		glyph = st.Icon
	}
	return Element{ID: id, Message: msg, Severity: sev, Variant: v, Glyph: glyph, Color: st.Color, Phase: PhaseEnter}
}
