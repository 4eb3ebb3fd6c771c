package common

import (
	"github.com/charmbracelet/lipgloss"

	"suptui/internal/table"
)

// StatusBar is the one-line message strip under a screen. Its background
// follows the same tones as the table badges.
type StatusBar struct {
	message string
	tone    table.Tone
}

// NewStatusBar creates a status bar with the given message.
func NewStatusBar(msg string) StatusBar {
	return StatusBar{message: msg, tone: table.ToneNeutral}
}

// SetMessage shows an informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message, s.tone = msg, table.ToneNeutral
}

// SetSuccess shows the outcome of a write that went through.
func (s *StatusBar) SetSuccess(msg string) {
	s.message, s.tone = msg, table.ToneSuccess
}

// SetError shows err. A nil err clears the bar.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.SetMessage("")
		return
	}
	s.message, s.tone = err.Error(), table.ToneError
}

func (s StatusBar) Message() string { return s.message }

func (s StatusBar) View() string {
	if s.message == "" {
		return ""
	}
	bg, ok := toneColors[s.tone]
	if !ok || s.tone == table.ToneNeutral {
		bg = lipgloss.Color("#333")
	}
	fg := lipgloss.Color("#fff")
	if s.tone == table.ToneSuccess || s.tone == table.ToneWarning {
		fg = lipgloss.Color("#111")
	}
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(0, 1).Render(s.message)
}
