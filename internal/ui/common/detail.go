package common

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// DetailStyle is the glamour style used for detail views.
var DetailStyle = "dark"

// Field is one labelled value of a detail view. Empty values are skipped.
type Field struct {
	Label string
	Value string
}

// DetailModel renders a record as markdown.
type DetailModel struct {
	title    string
	sections map[string][]Field
	order    []string
	width    int
}

// NewDetail creates a detail view with a title and ordered fields.
func NewDetail(title string, fields []Field) DetailModel {
	m := DetailModel{title: title, sections: map[string][]Field{}, width: 80}
	m.AddSection("", fields)
	return m
}

// AddSection appends a titled group of fields.
func (m *DetailModel) AddSection(name string, fields []Field) {
	if _, ok := m.sections[name]; !ok {
		m.order = append(m.order, name)
	}
	m.sections[name] = append(m.sections[name], fields...)
}

// Markdown returns the markdown source of the view.
func (m DetailModel) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.title)
	for _, name := range m.order {
		if name != "" {
			fmt.Fprintf(&b, "## %s\n\n", name)
		}
		for _, f := range m.sections[name] {
			if f.Value == "" {
				continue
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", f.Label, f.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Init implements tea.Model.
func (m DetailModel) Init() tea.Cmd { return nil }

// Update tracks the window width for word wrapping.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	return m, nil
}

// View renders the detail view.
func (m DetailModel) View() string {
	md := m.Markdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(DetailStyle),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

var _ tea.Model = (*DetailModel)(nil)
