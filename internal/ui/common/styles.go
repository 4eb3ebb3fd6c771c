package common

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"suptui/internal/table"
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	FocusStyle    = lipgloss.NewStyle().Underline(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	MenuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9534F"))
)

var toneColors = map[table.Tone]lipgloss.Color{
	table.ToneNeutral: lipgloss.Color("#919EAB"),
	table.ToneDark:    lipgloss.Color("#FFFFFF"),
	table.ToneSuccess: lipgloss.Color("#22C55E"),
	table.ToneWarning: lipgloss.Color("#FFAB00"),
	table.ToneError:   lipgloss.Color("#FF5630"),
	table.ToneInfo:    lipgloss.Color("#00B8D9"),
}

// ToneStyle returns the foreground style of a tone.
func ToneStyle(t table.Tone) lipgloss.Style {
	c, ok := toneColors[t]
	if !ok {
		c = toneColors[table.ToneNeutral]
	}
	return lipgloss.NewStyle().Foreground(c)
}

// toneMarks prefix badge text inside grid cells, where ANSI styling would
// break column truncation.
var toneMarks = map[table.Tone]string{
	table.ToneSuccess: "●",
	table.ToneWarning: "◐",
	table.ToneError:   "✕",
	table.ToneInfo:    "◆",
	table.ToneDark:    "■",
}

// CellText returns the plain text drawn for a resolved cell.
func CellText(c table.Cell, r table.Row) string {
	switch c.Kind {
	case table.CellBadge:
		mark, ok := toneMarks[c.Tone]
		if !ok {
			mark = "○"
		}
		return mark + " " + c.Text
	case table.CellAvatar:
		return "(" + Initials(table.FormatValue(r["name"])) + ")"
	}
	return c.Text
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		for _, r := range w {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

// Badge renders text as a colored chip.
func Badge(text string, t table.Tone) string {
	return ToneStyle(t).Bold(true).Render(text)
}

// RenderTabs draws the status tab bar with per-tab counts.
func RenderTabs(tabs []table.StatusTab, active int) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		name := tab.Label
		if i == active {
			name = lipgloss.NewStyle().Bold(true).Underline(true).Render(name)
		}
		parts = append(parts, name+" "+Badge(strconv.Itoa(tab.Count), table.TabTone(tab, i)))
	}
	return strings.Join(parts, MutedStyle.Render(" │ "))
}
