package ui

import "github.com/charmbracelet/lipgloss"

// minSplitWidth is the narrowest terminal that still gets the sidebar.
const minSplitWidth = 100

// Layout puts the sidebar next to the main view. The sidebar takes a fifth
// of width; below minSplitWidth only the main view is shown.
func Layout(width int, sidebar, main string) string {
	if width < minSplitWidth {
		return main
	}
	sidebarWidth := width / 5
	mainWidth := width - sidebarWidth

	sb := lipgloss.NewStyle().Width(sidebarWidth).Render(sidebar)
	mn := lipgloss.NewStyle().Width(mainWidth).Render(main)
	return lipgloss.JoinHorizontal(lipgloss.Top, sb, mn)
}
