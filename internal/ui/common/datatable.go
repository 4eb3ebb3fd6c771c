package common

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"suptui/internal/table"
	"suptui/internal/ui/uiconst"
)

// RowEditMsg is emitted when "Edit" is chosen in a row menu.
type RowEditMsg struct {
	Table string
	Row   table.Row
}

// RowActionMsg is emitted when "Delete" is chosen in a row menu.
type RowActionMsg struct {
	Table string
	Row   table.Row
}

// SelectionChangedMsg carries the selected rows after every selection change.
type SelectionChangedMsg struct {
	Table string
	Rows  []table.Row
}

// ExportedMsg reports the result of a CSV export.
type ExportedMsg struct {
	Path string
	Err  error
}

// PrintedMsg reports the result of a print hand-off.
type PrintedMsg struct {
	Err error
}

// outbox collects engine callbacks raised during one Update so they can be
// returned as commands. It is shared by every copy of a DataTableModel.
type outbox struct {
	msgs []tea.Msg
}

func (o *outbox) push(msg tea.Msg) { o.msgs = append(o.msgs, msg) }

func (o *outbox) drain() tea.Cmd {
	if len(o.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(o.msgs))
	for _, msg := range o.msgs {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	o.msgs = nil
	return tea.Batch(cmds...)
}

// DataTableOptions configures the terminal side of a DataTableModel.
type DataTableOptions struct {
	ExportDir string
	Printer   table.Printer
}

// DataTableModel renders a table.Table with bubbles widgets and maps keys
// onto its operations.
type DataTableModel struct {
	engine     *table.Table
	view       table.View
	grid       btable.Model
	pager      paginator.Model
	search     textinput.Model
	searchMode bool
	sortCol    int
	filterIdx  int
	opts       DataTableOptions
	out        *outbox
	width      int
	height     int
}

// NewDataTable builds the engine from cfg and data. Callbacks already set on
// cfg still run; their events are also emitted as messages.
func NewDataTable(cfg table.Config, data []table.Row, opts DataTableOptions) DataTableModel {
	out := &outbox{}
	title := cfg.Title
	onSelect, onEdit, onAction := cfg.OnSelect, cfg.OnEdit, cfg.OnAction
	cfg.OnSelect = func(rows []table.Row) {
		if onSelect != nil {
			onSelect(rows)
		}
		out.push(SelectionChangedMsg{Table: title, Rows: rows})
	}
	cfg.OnEdit = func(r table.Row) {
		if onEdit != nil {
			onEdit(r)
		}
		out.push(RowEditMsg{Table: title, Row: r})
	}
	cfg.OnAction = func(r table.Row) {
		if onAction != nil {
			onAction(r)
		}
		out.push(RowActionMsg{Table: title, Row: r})
	}
	if cfg.StatusField != "" && len(cfg.Tabs) > 0 {
		cfg.Tabs = table.CountByStatus(data, cfg.StatusField, cfg.Tabs)
	}

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Prompt = "Search: "
	ti.CharLimit = 128
	ti.Width = 30

	pg := paginator.New()
	pg.Type = paginator.Arabic

	m := DataTableModel{
		engine: table.New(cfg, data),
		grid: btable.New(
			btable.WithFocused(true),
			btable.WithHeight(uiconst.TableHeightDefault),
		),
		pager:  pg,
		search: ti,
		opts:   opts,
		out:    out,
		width:  120,
		height: 30,
	}
	m.sortCol = m.firstSortable()
	m.refresh()
	return m
}

// Engine exposes the underlying table for hosting views and tests.
func (m DataTableModel) Engine() *table.Table { return m.engine }

// Searching reports whether keystrokes currently go to the search box.
func (m DataTableModel) Searching() bool { return m.searchMode }

// SetData replaces the dataset and refreshes the tab counts.
func (m *DataTableModel) SetData(data []table.Row) tea.Cmd {
	cfg := m.engine.Config()
	if cfg.StatusField != "" && len(cfg.Tabs) > 0 {
		m.engine.SetTabs(table.CountByStatus(data, cfg.StatusField, cfg.Tabs))
	}
	m.engine.SetData(data)
	m.refresh()
	return m.out.drain()
}

// CursorRow returns the row under the cursor on the current page.
func (m DataTableModel) CursorRow() (table.Row, bool) {
	c := m.grid.Cursor()
	if c < 0 || c >= len(m.view.Rows) {
		return nil, false
	}
	return m.view.Rows[c], true
}

// Selected returns the selected rows.
func (m DataTableModel) Selected() []table.Row { return m.engine.Selected() }

// ClearSelection deselects all rows.
func (m *DataTableModel) ClearSelection() tea.Cmd {
	m.engine.ClearSelection()
	m.refresh()
	return m.out.drain()
}

// Init implements tea.Model.
func (m DataTableModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m DataTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if _, open := m.engine.MenuRow(); open {
			return m.updateMenu(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m DataTableModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Blur()
		m.search.SetValue("")
		m.engine.SetSearch("")
		m.refresh()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	}
	old := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != old {
		m.engine.SetSearch(v)
		m.refresh()
	}
	return m, cmd
}

func (m DataTableModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		m.engine.MenuEdit()
	case "d":
		m.engine.MenuDelete()
	case "esc", "m":
		m.engine.CloseMenu()
	}
	return m, m.out.drain()
}

func (m DataTableModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searchMode = true
		m.search.SetValue(m.engine.Search())
		m.search.Focus()
		return m, textinput.Blink
	case "tab":
		m.engine.SetTab(m.engine.Tab() + 1)
	case "shift+tab":
		m.engine.SetTab(m.engine.Tab() - 1)
	case "right", "l":
		m.engine.NextPage()
	case "left", "h":
		m.engine.PrevPage()
	case ",":
		m.moveSortCol(-1)
	case ".":
		m.moveSortCol(1)
	case "s":
		if cols := m.engine.Columns(); m.sortCol >= 0 && m.sortCol < len(cols) {
			m.engine.ToggleSort(cols[m.sortCol].Key)
		}
	case " ":
		if r, ok := m.CursorRow(); ok {
			m.engine.ToggleRow(r)
		}
	case "a":
		m.engine.SelectAllOnPage(!m.view.AllSelected)
	case "n":
		m.engine.SetRowsPerPage(nextOption(m.engine.RowsPerPageOptions(), m.engine.RowsPerPage()))
	case "f":
		m.cycleFilter()
	case "F":
		if n := len(m.engine.FieldFilters()); n > 0 {
			m.filterIdx = (m.filterIdx + 1) % n
		}
	case "m":
		if r, ok := m.CursorRow(); ok {
			m.engine.OpenMenu(r)
		}
	case "x":
		path, err := m.engine.ExportFile(m.opts.ExportDir)
		m.out.push(ExportedMsg{Path: path, Err: err})
	case "p":
		if m.opts.Printer != nil {
			m.out.push(PrintedMsg{Err: m.engine.Print(m.opts.Printer)})
		}
	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, m.out.drain()
}

func (m *DataTableModel) cycleFilter() {
	filters := m.engine.FieldFilters()
	if m.filterIdx >= len(filters) {
		return
	}
	ff := filters[m.filterIdx]
	values := []string{table.AllValue}
	for _, o := range ff.Options {
		if o.Value != table.AllValue {
			values = append(values, o.Value)
		}
	}
	cur := m.engine.Filters()[ff.Field]
	if cur == "" {
		cur = table.AllValue
	}
	i := slices.Index(values, cur)
	m.engine.SetFilter(ff.Field, values[(i+1)%len(values)])
}

func nextOption(options []int, cur int) int {
	if len(options) == 0 {
		return cur
	}
	i := slices.Index(options, cur)
	return options[(i+1)%len(options)]
}

func (m DataTableModel) firstSortable() int {
	for i, c := range m.engine.Columns() {
		if c.Sortable {
			return i
		}
	}
	return -1
}

func (m *DataTableModel) moveSortCol(step int) {
	cols := m.engine.Columns()
	if m.sortCol < 0 {
		return
	}
	for i := 1; i <= len(cols); i++ {
		j := ((m.sortCol+step*i)%len(cols) + len(cols)) % len(cols)
		if cols[j].Sortable {
			m.sortCol = j
			return
		}
	}
}

// refresh recomputes the engine view and pushes it into the widgets.
func (m *DataTableModel) refresh() {
	m.view = m.engine.View()
	cols := m.engine.Columns()

	gridCols := make([]btable.Column, 0, len(cols)+1)
	gridCols = append(gridCols, btable.Column{Title: checkbox(m.view.AllSelected, m.view.Indeterminate), Width: 3})
	for i, c := range cols {
		gridCols = append(gridCols, btable.Column{Title: m.header(i, c), Width: m.columnWidth(c, len(cols))})
	}

	rows := make([]btable.Row, 0, len(m.view.Rows))
	for _, r := range m.view.Rows {
		row := make(btable.Row, 0, len(cols)+1)
		row = append(row, checkbox(m.engine.IsSelected(r), false))
		for _, c := range cols {
			row = append(row, CellText(table.RenderCell(c, r), r))
		}
		rows = append(rows, row)
	}

	m.grid.SetColumns(gridCols)
	m.grid.SetRows(rows)
	// SetRows leaves the cursor at -1 when it was called with no rows.
	if c := m.grid.Cursor(); c >= len(rows) {
		m.grid.SetCursor(max(len(rows)-1, 0))
	} else if c < 0 {
		m.grid.SetCursor(0)
	}
	if h := m.height - uiconst.TableHeightOffset - 4; h > 3 {
		m.grid.SetHeight(h)
	}

	m.pager.PerPage = max(m.view.RowsPerPage, 1)
	m.pager.SetTotalPages(m.view.Total)
	m.pager.Page = m.view.Page
}

func (m DataTableModel) header(i int, c table.Column) string {
	title := c.Label
	if s := m.view.Sort; s != nil && s.Key == c.Key {
		if s.Direction == table.Desc {
			title += " ▼"
		} else {
			title += " ▲"
		}
	}
	if i == m.sortCol {
		title = "›" + title
	}
	return title
}

func (m DataTableModel) columnWidth(c table.Column, n int) int {
	if c.Width > 0 {
		return c.Width
	}
	w := (m.width - 3 - 2*(n+1)) / max(n, 1)
	return max(w, uiconst.ColWidthMin)
}

func checkbox(checked, indeterminate bool) string {
	switch {
	case checked:
		return "[x]"
	case indeterminate:
		return "[-]"
	}
	return "[ ]"
}

// View renders tabs, toolbar, grid, footer and the open row menu.
func (m DataTableModel) View() string {
	var b strings.Builder
	if title := m.engine.Config().Title; title != "" {
		b.WriteString(TitleStyle.Render(title))
		b.WriteString("\n")
	}
	if tabs := m.view.Tabs; len(tabs) > 0 {
		b.WriteString(RenderTabs(tabs, m.view.Tab))
		b.WriteString("\n")
	}
	b.WriteString(m.toolbar())
	b.WriteString("\n")
	if m.view.Total == 0 {
		b.WriteString(MutedStyle.Render("No data"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.grid.View())
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	if r, open := m.engine.MenuRow(); open {
		b.WriteString("\n")
		b.WriteString(MenuStyle.Render(fmt.Sprintf("%s  [e] Edit  [d] Delete  [esc] Close", table.FormatValue(r[m.engine.Config().IDField]))))
	}
	return b.String()
}

func (m DataTableModel) toolbar() string {
	parts := []string{}
	if m.searchMode {
		parts = append(parts, m.search.View())
	} else if m.view.Search != "" {
		parts = append(parts, "Search: "+m.view.Search)
	}
	active := m.engine.Filters()
	for i, ff := range m.engine.FieldFilters() {
		v := active[ff.Field]
		label := "All"
		for _, o := range ff.Options {
			if o.Value == v {
				label = o.Label
			}
		}
		s := fmt.Sprintf("%s: %s", ff.Label, label)
		if i == m.filterIdx {
			s = FocusStyle.Render(s)
		}
		parts = append(parts, s)
	}
	if m.view.Selected > 0 {
		parts = append(parts, SelectedStyle.Render(fmt.Sprintf("%d selected", m.view.Selected)))
	}
	return strings.Join(parts, "  ")
}

func (m DataTableModel) footer() string {
	from, to := 0, 0
	if m.view.Total > 0 && len(m.view.Rows) > 0 {
		from = m.view.Page*m.view.RowsPerPage + 1
		to = from + len(m.view.Rows) - 1
	}
	return MutedStyle.Render(fmt.Sprintf("%d-%d of %d  page %s  rows per page %d",
		from, to, m.view.Total, m.pager.View(), m.view.RowsPerPage))
}

var _ tea.Model = (*DataTableModel)(nil)
