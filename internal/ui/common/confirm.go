package common

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	answerYes = "Yes"
	answerNo  = "No"
)

type answerItem string

func (a answerItem) Title() string       { return string(a) }
func (a answerItem) Description() string { return "" }
func (a answerItem) FilterValue() string { return string(a) }

// ConfirmModel asks a yes/no question before a write. No is preselected so
// a stray enter never deletes anything.
type ConfirmModel struct {
	choices  list.Model
	question string
	yes      bool
	done     bool
}

// NewConfirm creates a confirm dialog for question.
func NewConfirm(question string) ConfirmModel {
	items := []list.Item{answerItem(answerYes), answerItem(answerNo)}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 24, 4)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Select(1)
	return ConfirmModel{choices: l, question: question}
}

// Done reports whether the user answered.
func (m ConfirmModel) Done() bool { return m.done }

// Confirmed reports whether the answer was yes.
func (m ConfirmModel) Confirmed() bool { return m.done && m.yes }

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Update takes y/n shortcuts or moves between the choices.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if a, ok := m.choices.SelectedItem().(answerItem); ok {
				m.yes, m.done = a == answerYes, true
			}
			return m, nil
		case "y":
			m.yes, m.done = true, true
			return m, nil
		case "n", "esc":
			m.yes, m.done = false, true
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

// View renders the question above the choices.
func (m ConfirmModel) View() string {
	body := TitleStyle.Render(m.question) + "\n\n" + m.choices.View() + "\n" +
		MutedStyle.Render("y: yes  n/esc: no  enter: choose")
	return MenuStyle.Render(body)
}

var _ tea.Model = (*ConfirmModel)(nil)
