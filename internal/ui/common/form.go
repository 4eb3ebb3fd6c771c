package common

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormField is one labelled input of a FormModel.
type FormField struct {
	Key   string
	Label string
	Value string
}

// FormModel is an edit dialog made of text inputs.
type FormModel struct {
	title      string
	keys       []string
	inputs     []textinput.Model
	focusIndex int
	submitted  bool
	cancelled  bool
	err        string
}

// NewForm creates a form prefilled with the field values.
func NewForm(title string, fields []FormField) FormModel {
	inputs := make([]textinput.Model, len(fields))
	keys := make([]string, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Label
		ti.Prompt = f.Label + ": "
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(f.Value)
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
		keys[i] = f.Key
	}
	return FormModel{title: title, keys: keys, inputs: inputs}
}

// Submitted reports whether the last field was confirmed with enter.
func (m FormModel) Submitted() bool { return m.submitted }

// Cancelled reports whether the form was dismissed with esc.
func (m FormModel) Cancelled() bool { return m.cancelled }

// Values returns the current input values by field key.
func (m FormModel) Values() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for i, in := range m.inputs {
		out[m.keys[i]] = strings.TrimSpace(in.Value())
	}
	return out
}

// SetError shows err under the form and reopens it for editing.
func (m *FormModel) SetError(err error) {
	m.submitted = false
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key events and input updates.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "enter":
			if m.focusIndex < len(m.inputs)-1 {
				m.inputs[m.focusIndex].Blur()
				m.focusIndex++
				m.inputs[m.focusIndex].Focus()
				return m, nil
			}
			// Last field, mark as submitted.
			m.submitted = true
			return m, nil
		case "tab", "shift+tab", "down", "up":
			m.inputs[m.focusIndex].Blur()
			if s := msg.String(); s == "tab" || s == "down" {
				m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
			} else {
				m.focusIndex = (m.focusIndex - 1 + len(m.inputs)) % len(m.inputs)
			}
			m.inputs[m.focusIndex].Focus()
			return m, nil
		}
	}

	// Update the currently focused input.
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// View renders the form fields.
func (m FormModel) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(TitleStyle.Render(m.title))
		b.WriteString("\n\n")
	}
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteRune('\n')
	}
	if m.err != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.err))
	}
	b.WriteString("\n" + MutedStyle.Render("enter: next/save  tab: move  esc: cancel"))
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Render(b.String())
}

var _ tea.Model = (*FormModel)(nil)
