package table

import "strings"

// Tone is the semantic color of a badge or tab chip.
type Tone string

const (
	ToneDefault Tone = ""
	ToneNeutral Tone = "neutral"
	ToneDark    Tone = "dark"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

// CellKind tells the display layer how to draw a cell.
type CellKind int

const (
	CellText CellKind = iota
	CellBadge
	CellAvatar
	CellCustom
)

// Cell is the resolved display value of one (column, row) pair.
type Cell struct {
	Kind  CellKind
	Value any
	Text  string
	Tone  Tone
}

// statusTones is matched case-insensitively and exactly. Unknown statuses
// fall back to ToneNeutral.
var statusTones = map[string]Tone{
	"active host":     ToneSuccess,
	"active guest":    ToneSuccess,
	"pending host":    ToneWarning,
	"anonymous guest": ToneNeutral,

	"active":    ToneSuccess,
	"confirmed": ToneSuccess,
	"completed": ToneSuccess,
	"pending":   ToneWarning,
	"upcoming":  ToneWarning,
	"ongoing":   ToneWarning,
	"inactive":  ToneError,
	"cancelled": ToneError,
}

// StatusTone maps a status string to its badge tone.
func StatusTone(status string) Tone {
	if t, ok := statusTones[strings.ToLower(status)]; ok {
		return t
	}
	return ToneNeutral
}

var tabTones = []Tone{ToneDark, ToneSuccess, ToneWarning, ToneError, ToneNeutral}

// TabTone returns the chip tone of the tab at index. An explicit tab color
// wins; otherwise the tone is picked by position, the last one repeating.
func TabTone(tab StatusTab, index int) Tone {
	if tab.Color != ToneDefault {
		return tab.Color
	}
	if index >= 0 && index < len(tabTones) {
		return tabTones[index]
	}
	return tabTones[len(tabTones)-1]
}

// RenderCell resolves how the value of column c in row r is shown.
func RenderCell(c Column, r Row) Cell {
	v := r[c.Key]
	if c.Render != nil {
		return Cell{Kind: CellCustom, Value: v, Text: c.Render(v, r)}
	}
	if s, ok := v.(string); ok && strings.Contains(c.Key, "status") {
		return Cell{Kind: CellBadge, Value: v, Text: s, Tone: StatusTone(s)}
	}
	if strings.Contains(c.Key, "avatar") || strings.Contains(c.Key, "image") {
		return Cell{Kind: CellAvatar, Value: v, Text: formatValue(v)}
	}
	return Cell{Kind: CellText, Value: v, Text: formatValue(v)}
}
