package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"suptui/internal/client"
	"suptui/internal/ui/analytics"
	"suptui/internal/ui/bookings"
	"suptui/internal/ui/catalog"
	"suptui/internal/ui/common"
	"suptui/internal/ui/profile"
	"suptui/internal/ui/search"
	"suptui/internal/ui/users"
	"suptui/internal/ui/vendors"
)

// item represents a selectable entry in the sidebar.
type item struct {
	title       string
	description string
}

// item implements list.Item
func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.description }
func (i item) FilterValue() string { return i.title }

func (i item) header() bool { return strings.HasPrefix(i.title, "===") }

// UI states for the root model.
const (
	stateSidebar = "sidebar"
	stateMain    = "main"
	stateSearch  = "search"
	stateHelp    = "help"
	stateCommand = "command"
)

const quitCommand = "__quit__"

// Clients are the API clients behind the screens. Global search skips
// nil clients.
type Clients struct {
	Users     client.UsersClient
	Vendors   client.VendorsClient
	Bookings  client.BookingsClient
	Catalog   client.CatalogClient
	Profile   client.ProfileClient
	Analytics client.AnalyticsClient
}

// Options configure the root model.
type Options struct {
	Env common.Env
	// Account is shown in the sidebar title when set.
	Account string
	// OnSessionExpired runs when the API rejects the session, typically to
	// drop the cached token.
	OnSessionExpired func()
}

// screen is implemented by every resource view.
type screen interface {
	tea.Model
	CapturesInput() bool
	Overlay() bool
	Table() common.DataTableModel
}

// AppModel is the root model of the TUI, managing a simple state machine.
type AppModel struct {
	clients   Clients
	opts      Options
	sidebar   list.Model
	width     int
	height    int
	state     string
	prevState string
	// section is the sidebar title of the active screen.
	section string
	// mainModel holds the active resource screen, nil in the sidebar.
	mainModel screen
	// searchModel is the global search, kept while it is open.
	searchModel *search.SearchModel
	// banner reports problems that outlive a screen, like an expired session.
	banner     string
	commandBar textinput.Model
	// commandMap maps command strings to section titles.
	commandMap map[string]string
	// tabMatches holds autocomplete suggestions for the current prefix.
	tabMatches []string
	tabIndex   int
}

// NewModel creates a new AppModel with a sidebar list.
func NewModel(c Clients, opts Options) AppModel {
	items := []list.Item{
		item{title: "=== DIRECTORY ===", description: ""},
		item{title: sectionUsers, description: "Dashboard accounts"},
		item{title: sectionVendors, description: "Supplier organisations"},
		item{title: sectionBookings, description: "Reservations and their status"},
		item{title: "=== CATALOG ===", description: ""},
		item{title: sectionEventTypes, description: "Guest capacity per event type"},
		item{title: sectionServices, description: "Services and prices you offer"},
		item{title: "=== SUPPLIER ===", description: ""},
		item{title: sectionProfile, description: "Policies, payment and social links"},
		item{title: sectionAnalytics, description: "Totals, trends and top performers"},
		item{title: sectionSearch, description: "Search users, vendors and bookings"},
		item{title: sectionExit, description: "Quit the application"},
	}
	const defaultWidth = 36
	const defaultHeight = 20
	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = "SUPTUI – Supplier Dashboard"
	if opts.Account != "" {
		l.Title += " · " + opts.Account
	}
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	// Start on the first real section.
	l.Select(1)

	cmdBar := textinput.New()
	cmdBar.Placeholder = "command"
	cmdMap := map[string]string{
		"users": sectionUsers, "u": sectionUsers,
		"vendors": sectionVendors, "v": sectionVendors,
		"bookings": sectionBookings, "bk": sectionBookings,
		"eventtypes": sectionEventTypes, "events": sectionEventTypes, "et": sectionEventTypes,
		"services": sectionServices, "svc": sectionServices,
		"profile": sectionProfile, "bp": sectionProfile,
		"analytics": sectionAnalytics, "stats": sectionAnalytics,
		"search": sectionSearch, "find": sectionSearch,
		"quit": quitCommand,
	}
	if opts.Env.Log == nil {
		opts.Env.Log = zap.NewNop()
	}
	return AppModel{clients: c, opts: opts, sidebar: l, state: stateSidebar, commandBar: cmdBar, commandMap: cmdMap}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// navigateTo opens section and returns the command that starts loading it.
func (m *AppModel) navigateTo(section string) tea.Cmd {
	env := m.opts.Env
	var next screen
	switch section {
	case sectionUsers:
		next = users.NewUsersModel(m.clients.Users, env)
	case sectionVendors:
		next = vendors.NewVendorsModel(m.clients.Vendors, env)
	case sectionBookings:
		next = bookings.NewBookingsModel(m.clients.Bookings, env)
	case sectionEventTypes:
		next = catalog.NewEventTypesModel(m.clients.Catalog, env)
	case sectionServices:
		next = catalog.NewServicesModel(m.clients.Catalog, env)
	case sectionProfile:
		next = profile.NewProfileModel(m.clients.Profile, env)
	case sectionAnalytics:
		next = analytics.NewAnalyticsModel(m.clients.Analytics, env)
	case sectionSearch:
		sm := search.NewSearchModel(searchSources(m.clients), env.Cache, env.Log, m.width, m.height)
		m.searchModel = &sm
		m.prevState = m.state
		m.state = stateSearch
		return sm.Init()
	default:
		return nil
	}
	env.Log.Debug("navigate", zap.String("section", section))
	m.section = section
	m.mainModel = next
	m.state = stateMain
	m.banner = ""
	cmds := []tea.Cmd{next.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.mainWidth(), Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// mainWidth is the width left to a screen next to the sidebar.
func (m AppModel) mainWidth() int {
	if m.width < minSplitWidth {
		return m.width
	}
	return m.width - m.width/5
}

// capturing reports whether keys must skip the global bindings.
func (m AppModel) capturing() bool {
	switch m.state {
	case stateSearch:
		return true
	case stateMain:
		return m.mainModel != nil && m.mainModel.CapturesInput()
	}
	return false
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar.SetSize(max(msg.Width/3, 30), msg.Height-4)
		var cmds []tea.Cmd
		if m.mainModel != nil {
			next, cmd := m.mainModel.Update(tea.WindowSizeMsg{Width: m.mainWidth(), Height: msg.Height})
			m.mainModel = next.(screen)
			cmds = append(cmds, cmd)
		}
		if m.searchModel != nil {
			next, _ := m.searchModel.Update(msg)
			sm := next.(search.SearchModel)
			m.searchModel = &sm
		}
		return m, tea.Batch(cmds...)
	case common.SessionExpiredMsg:
		m.opts.Env.Log.Warn("session expired")
		if m.opts.OnSessionExpired != nil {
			m.opts.OnSessionExpired()
		}
		m.banner = "Session expired. Run `suptui login` and restart."
		return m, nil
	case search.SearchDoneMsg:
		m.searchModel = nil
		m.state = m.prevState
		m.prevState = ""
		if m.state == "" || m.state == stateSearch {
			m.state = stateSidebar
		}
		return m, nil
	case search.SearchSelectedMsg:
		m.searchModel = nil
		m.prevState = ""
		cmd := m.navigateTo(msg.Result.Category)
		if m.mainModel != nil {
			// The engine is shared by pointer, so the new screen opens pre-filtered.
			m.mainModel.Table().Engine().SetSearch(msg.Result.Name)
		}
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, GlobalKeyMap.ForceQuit) {
			return m, tea.Quit
		}
		if m.state == stateCommand {
			return m.updateCommand(msg)
		}
		if m.capturing() {
			break
		}
		switch {
		case key.Matches(msg, GlobalKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, GlobalKeyMap.Help):
			if m.state == stateHelp {
				m.state, m.prevState = m.prevState, ""
			} else {
				m.prevState = m.state
				m.state = stateHelp
			}
			return m, nil
		case key.Matches(msg, GlobalKeyMap.Esc):
			switch {
			case m.state == stateHelp:
				m.state, m.prevState = m.prevState, ""
				return m, nil
			case m.state == stateMain && m.mainModel != nil && m.mainModel.Overlay():
				// The screen closes its own overlay.
			case m.state != stateSidebar:
				m.state = stateSidebar
				m.mainModel = nil
				m.section = ""
				return m, nil
			}
		case key.Matches(msg, GlobalKeyMap.Command):
			m.prevState = m.state
			m.state = stateCommand
			m.commandBar.SetValue("")
			m.commandBar.Focus()
			return m, nil
		case key.Matches(msg, GlobalKeyMap.Search):
			return m, m.navigateTo(sectionSearch)
		case key.Matches(msg, GlobalKeyMap.Enter) && m.state == stateSidebar:
			i, ok := m.sidebar.SelectedItem().(item)
			if !ok || i.header() {
				return m, nil
			}
			if i.title == sectionExit {
				return m, tea.Quit
			}
			return m, m.navigateTo(i.title)
		}
	}

	// Results arrive whatever the state, so anything that is not a key
	// reaches every open screen.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		var cmds []tea.Cmd
		if m.mainModel != nil {
			next, cmd := m.mainModel.Update(msg)
			m.mainModel = next.(screen)
			cmds = append(cmds, cmd)
		}
		if m.searchModel != nil {
			next, cmd := m.searchModel.Update(msg)
			sm := next.(search.SearchModel)
			m.searchModel = &sm
			cmds = append(cmds, cmd)
		}
		if m.state == stateSidebar {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch m.state {
	case stateSidebar:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	case stateMain:
		if m.mainModel != nil {
			next, cmd := m.mainModel.Update(msg)
			m.mainModel = next.(screen)
			return m, cmd
		}
	case stateSearch:
		if m.searchModel != nil {
			next, cmd := m.searchModel.Update(msg)
			sm := next.(search.SearchModel)
			m.searchModel = &sm
			return m, cmd
		}
	}
	return m, nil
}

func (m *AppModel) resetCommand() {
	m.commandBar.SetValue("")
	m.commandBar.Blur()
	m.tabMatches = nil
	m.tabIndex = 0
}

// updateCommand handles keys while the command bar is open.
func (m AppModel) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = m.prevState
		m.prevState = ""
		m.resetCommand()
		return m, nil
	case "enter":
		cmd := strings.TrimSpace(m.commandBar.Value())
		m.resetCommand()
		section, ok := m.commandMap[cmd]
		if !ok {
			// unknown command: stay in command mode with a clean input
			m.commandBar.Focus()
			return m, nil
		}
		if section == quitCommand {
			return m, tea.Quit
		}
		m.state = m.prevState
		m.prevState = ""
		return m, m.navigateTo(section)
	case "tab":
		prefix := strings.TrimSpace(m.commandBar.Value())
		var matches []string
		for k := range m.commandMap {
			if strings.HasPrefix(k, prefix) {
				matches = append(matches, k)
			}
		}
		sort.Strings(matches)
		if len(matches) == 0 {
			return m, nil
		}
		// If prefix changed, reset cycle
		if len(m.tabMatches) == 0 || m.commandBar.Value() != m.tabMatches[m.tabIndex] {
			m.tabMatches = matches
			m.tabIndex = 0
		} else {
			m.tabIndex = (m.tabIndex + 1) % len(m.tabMatches)
		}
		m.commandBar.SetValue(m.tabMatches[m.tabIndex])
		m.commandBar.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandBar, cmd = m.commandBar.Update(msg)
	return m, cmd
}

// navView is the compact section list shown beside a screen.
func (m AppModel) navView() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	var b strings.Builder
	for _, li := range m.sidebar.Items() {
		i := li.(item)
		switch {
		case i.header():
			b.WriteString(common.MutedStyle.Render(strings.Trim(i.title, "= ")) + "\n")
		case i.title == m.section:
			b.WriteString(active.Render("> "+i.title) + "\n")
		default:
			b.WriteString("  " + i.title + "\n")
		}
	}
	return b.String()
}

func (m AppModel) stateView(state string) string {
	switch state {
	case stateSidebar:
		return "\n" + m.sidebar.View() + "\n"
	case stateMain:
		if m.mainModel != nil {
			return Layout(m.width, m.navView(), m.mainModel.View())
		}
	case stateSearch:
		if m.searchModel != nil {
			return m.searchModel.View()
		}
	case stateHelp:
		return m.helpView()
	}
	return ""
}

// View implements tea.Model.
func (m AppModel) View() string {
	footer := fmt.Sprintf("\n[%s] Press : for command mode, ? for help", m.state)
	var view string
	if m.state == stateCommand {
		view = m.stateView(m.prevState) + "\n" + m.commandBar.View()
		// Show suggestions if multiple matches are available.
		if len(m.tabMatches) > 1 {
			view += "\n" + common.MutedStyle.Render(strings.Join(m.tabMatches, "  "))
		}
	} else {
		view = m.stateView(m.state)
	}
	if m.banner != "" {
		view = common.ErrorStyle.Render(m.banner) + "\n" + view
	}
	return view + footer
}

func (m AppModel) helpView() string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AAAAAA"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5CB85C"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))

	row := func(k, desc string) string {
		return keyStyle.Render(fmt.Sprintf("  %-14s", k)) + descStyle.Render(desc) + "\n"
	}

	b.WriteString(titleStyle.Render("\n  Global") + "\n")
	b.WriteString(row("q / ctrl+c", "Quit"))
	b.WriteString(row("?", "Toggle help"))
	b.WriteString(row(":", "Command mode"))
	b.WriteString(row("ctrl+f", "Global search"))

	switch m.prevState {
	case stateMain:
		b.WriteString(titleStyle.Render("\n  Table") + "\n")
		b.WriteString(row("j / k", "Move down / up"))
		b.WriteString(row("h / l", "Previous / next page"))
		b.WriteString(row("n", "Rows per page"))
		b.WriteString(row("tab", "Next status tab"))
		b.WriteString(row("/", "Search"))
		b.WriteString(row("f / F", "Cycle filter value / field"))
		b.WriteString(row(", / .", "Pick sort column"))
		b.WriteString(row("s", "Toggle sort"))
		b.WriteString(row("space / a", "Select row / page"))
		b.WriteString(row("m", "Row menu (e edit, d delete)"))
		b.WriteString(row("x", "Export CSV"))
		b.WriteString(row("p", "Copy page to clipboard"))
		b.WriteString(row("r", "Refresh"))
		b.WriteString(row("esc", "Back to sidebar"))
		switch m.mainModel.(type) {
		case users.UsersModel:
			b.WriteString(titleStyle.Render("\n  Users") + "\n")
			b.WriteString(row("enter", "Profile"))
			b.WriteString(row("S", "Activate / deactivate"))
			b.WriteString(row("D", "Delete selected"))
		case vendors.VendorsModel:
			b.WriteString(titleStyle.Render("\n  Vendors") + "\n")
			b.WriteString(row("enter", "Details"))
			b.WriteString(row("t", "Activate / deactivate"))
			b.WriteString(row("D", "Delete selected"))
		case bookings.BookingsModel:
			b.WriteString(titleStyle.Render("\n  Bookings") + "\n")
			b.WriteString(row("enter", "Details"))
			b.WriteString(row("1-4", "Set status of selection or row"))
			b.WriteString(row("D", "Delete selected"))
		case catalog.EventTypesModel, catalog.ServicesModel:
			b.WriteString(titleStyle.Render("\n  Catalog") + "\n")
			b.WriteString(row("C", "Remove all"))
		case profile.ProfileModel:
			b.WriteString(titleStyle.Render("\n  Business profile") + "\n")
			b.WriteString(row("enter", "Full profile"))
			b.WriteString(row("e", "Edit all fields"))
			b.WriteString(row("m d", "Clear field"))
		case analytics.AnalyticsModel:
			b.WriteString(titleStyle.Render("\n  Analytics") + "\n")
			b.WriteString(row("P", "Next period"))
			b.WriteString(row("enter", "Details"))
		}
	case stateCommand:
		b.WriteString(titleStyle.Render("\n  Command mode") + "\n")
		b.WriteString(row("tab", "Autocomplete (cycle)"))
		b.WriteString(row("enter", "Execute command"))
		b.WriteString(row("esc", "Cancel"))
	default:
		b.WriteString(titleStyle.Render("\n  Sidebar") + "\n")
		b.WriteString(row("j / k", "Move down / up"))
		b.WriteString(row("enter", "Open section"))
	}

	b.WriteString(titleStyle.Render("\n  Commands") + "\n")
	b.WriteString(row("users / u", sectionUsers))
	b.WriteString(row("vendors / v", sectionVendors))
	b.WriteString(row("bookings / bk", sectionBookings))
	b.WriteString(row("events / et", sectionEventTypes))
	b.WriteString(row("services / svc", sectionServices))
	b.WriteString(row("search / find", sectionSearch))
	b.WriteString(row("quit", "Exit"))

	b.WriteString(common.MutedStyle.Render("\n  [?] close help\n"))
	return b.String()
}

// Ensure AppModel implements tea.Model.
var _ tea.Model = (*AppModel)(nil)
