// Package table implements a generic in-memory data table: status tabs,
// free-text search, field filters, single-column sort, pagination, row
// selection, a per-row action menu and CSV export.
//
// A Table holds only view state. The rows belong to the caller and are never
// modified; every state change recomputes the visible set from scratch.
package table

import (
	"io"
	"maps"
)

// DefaultRowsPerPage and DefaultRowsPerPageOptions are used when a Config
// leaves them unset.
const DefaultRowsPerPage = 10

var DefaultRowsPerPageOptions = []int{5, 10, 25, 50}

// Config is everything a hosting view passes to New.
type Config struct {
	Title              string
	Columns            []Column
	Tabs               []StatusTab
	StatusField        string
	SearchFields       []string
	FieldFilters       []FieldFilter
	RowsPerPage        int
	RowsPerPageOptions []int
	IDField            string

	// OnSelect receives the resolved selected rows after every selection change.
	OnSelect func([]Row)
	// OnEdit is invoked by the row menu "Edit" entry.
	OnEdit func(Row)
	// OnAction is invoked by the row menu "Delete" entry.
	OnAction func(Row)
}

// Table is the orchestrator owning all transient view state.
type Table struct {
	cfg         Config
	searchable  []string
	data        []Row
	filtered    []Row
	tab         int
	page        int
	rowsPerPage int
	sort        *SortConfig
	filters     map[string]string
	search      string
	sel         *Selection
	menu        Row
}

// View is a snapshot of what should be on screen.
type View struct {
	Rows          []Row
	Total         int
	Page          int
	RowsPerPage   int
	PageCount     int
	AllSelected   bool
	Indeterminate bool
	Selected      int
	Sort          *SortConfig
	Tab           int
	Tabs          []StatusTab
	Search        string
}

// New builds a table over data with default view state.
func New(cfg Config, data []Row) *Table {
	if cfg.IDField == "" {
		cfg.IDField = DefaultIDField
	}
	if cfg.RowsPerPage <= 0 {
		cfg.RowsPerPage = DefaultRowsPerPage
	}
	if len(cfg.RowsPerPageOptions) == 0 {
		cfg.RowsPerPageOptions = DefaultRowsPerPageOptions
	}
	t := &Table{
		cfg:         cfg,
		searchable:  SearchFields(cfg.Columns, cfg.SearchFields),
		data:        data,
		rowsPerPage: cfg.RowsPerPage,
		filters:     make(map[string]string),
		sel:         NewSelection(cfg.IDField),
	}
	t.recompute()
	return t
}

// Config returns the configuration the table was built with.
func (t *Table) Config() Config { return t.cfg }

// Columns returns the column definitions.
func (t *Table) Columns() []Column { return t.cfg.Columns }

// Data returns the caller's rows.
func (t *Table) Data() []Row { return t.data }

// Filtered returns the rows surviving every filter, sorted.
func (t *Table) Filtered() []Row { return t.filtered }

// SetData swaps the caller's rows. View state, including the selection, is kept.
func (t *Table) SetData(data []Row) {
	t.data = data
	t.recompute()
	t.notifySelection()
}

// SetTab switches the status tab. The current page is kept.
func (t *Table) SetTab(i int) {
	if len(t.cfg.Tabs) == 0 || i < 0 || i >= len(t.cfg.Tabs) {
		return
	}
	t.tab = i
	t.recompute()
}

// Tab returns the active tab index.
func (t *Table) Tab() int { return t.tab }

// Tabs returns the configured tabs.
func (t *Table) Tabs() []StatusTab { return t.cfg.Tabs }

// SetTabs replaces the tab list, typically to refresh counts after new data.
func (t *Table) SetTabs(tabs []StatusTab) {
	t.cfg.Tabs = tabs
	if t.tab >= len(tabs) {
		t.tab = 0
	}
	t.recompute()
}

// SetSearch sets the free-text search and returns to the first page.
func (t *Table) SetSearch(s string) {
	t.search = s
	t.page = 0
	t.recompute()
}

// Search returns the current search text.
func (t *Table) Search() string { return t.search }

// SetFilter sets one field filter and returns to the first page.
func (t *Table) SetFilter(field, value string) {
	t.filters[field] = value
	t.page = 0
	t.recompute()
}

// Filters returns a copy of the field filter state.
func (t *Table) Filters() map[string]string { return maps.Clone(t.filters) }

// FieldFilters returns the configured toolbar filters.
func (t *Table) FieldFilters() []FieldFilter { return t.cfg.FieldFilters }

// ToggleSort sorts by key, flipping the direction when key is already active.
func (t *Table) ToggleSort(key string) {
	t.sort = NextSort(t.sort, key)
	t.recompute()
}

// Sort returns the active sort, or nil.
func (t *Table) Sort() *SortConfig { return t.sort }

// SetRowsPerPage changes the page size and returns to the first page.
func (t *Table) SetRowsPerPage(n int) {
	if n <= 0 {
		return
	}
	t.rowsPerPage = n
	t.page = 0
}

// RowsPerPage returns the page size.
func (t *Table) RowsPerPage() int { return t.rowsPerPage }

// RowsPerPageOptions returns the selectable page sizes.
func (t *Table) RowsPerPageOptions() []int { return t.cfg.RowsPerPageOptions }

// SetPage moves to page p. Pages past the end are allowed and render empty.
func (t *Table) SetPage(p int) {
	if p < 0 {
		p = 0
	}
	t.page = p
}

// Page returns the zero-based page index.
func (t *Table) Page() int { return t.page }

// NextPage advances one page when there is one.
func (t *Table) NextPage() {
	if t.page+1 < PageCount(len(t.filtered), t.rowsPerPage) {
		t.page++
	}
}

// PrevPage goes back one page.
func (t *Table) PrevPage() {
	if t.page > 0 {
		t.page--
	}
}

// PageRows returns the rows on the current page.
func (t *Table) PageRows() []Row {
	return Page(t.filtered, t.page, t.rowsPerPage)
}

// ToggleRow flips the selection of r.
func (t *Table) ToggleRow(r Row) {
	t.sel.Toggle(r)
	t.notifySelection()
}

// SelectAllOnPage selects or clears every row on the current page.
func (t *Table) SelectAllOnPage(checked bool) {
	t.sel.SelectPage(t.PageRows(), checked)
	t.notifySelection()
}

// ClearSelection deselects everything.
func (t *Table) ClearSelection() {
	t.sel.Clear()
	t.notifySelection()
}

// IsSelected reports whether r is selected.
func (t *Table) IsSelected(r Row) bool { return t.sel.Has(r) }

// Selected returns the selected rows resolved against the current data.
func (t *Table) Selected() []Row { return t.sel.Resolve(t.data) }

// OpenMenu opens the action menu for r, closing any other.
func (t *Table) OpenMenu(r Row) { t.menu = r }

// MenuRow returns the row whose menu is open.
func (t *Table) MenuRow() (Row, bool) { return t.menu, t.menu != nil }

// CloseMenu closes the action menu.
func (t *Table) CloseMenu() { t.menu = nil }

// MenuEdit invokes the edit callback with the menu row and closes the menu.
func (t *Table) MenuEdit() {
	r := t.menu
	t.menu = nil
	if r != nil && t.cfg.OnEdit != nil {
		t.cfg.OnEdit(r)
	}
}

// MenuDelete invokes the action callback with the menu row and closes the menu.
func (t *Table) MenuDelete() {
	r := t.menu
	t.menu = nil
	if r != nil && t.cfg.OnAction != nil {
		t.cfg.OnAction(r)
	}
}

// View computes the current page and derived flags.
func (t *Table) View() View {
	rows := t.PageRows()
	return View{
		Rows:          rows,
		Total:         len(t.filtered),
		Page:          t.page,
		RowsPerPage:   t.rowsPerPage,
		PageCount:     PageCount(len(t.filtered), t.rowsPerPage),
		AllSelected:   t.sel.AllOnPage(rows),
		Indeterminate: t.sel.Indeterminate(rows),
		Selected:      t.sel.Len(),
		Sort:          t.sort,
		Tab:           t.tab,
		Tabs:          t.cfg.Tabs,
		Search:        t.search,
	}
}

// Print hands the current page, rendered as text, to the host printer.
func (t *Table) Print(p Printer) error {
	return p.Print(t.cfg.Title, RenderText(t.cfg.Columns, t.PageRows()))
}

// Export writes the full, unfiltered caller dataset as CSV.
func (t *Table) Export(w io.Writer) error {
	return WriteCSV(w, t.cfg.Columns, t.data)
}

// ExportFile writes the export as table-export.csv inside dir.
func (t *Table) ExportFile(dir string) (string, error) {
	return writeCSVFile(dir, t.cfg.Columns, t.data)
}

func (t *Table) query() Query {
	return Query{
		Tabs:         t.cfg.Tabs,
		StatusField:  t.cfg.StatusField,
		Tab:          t.tab,
		Search:       t.search,
		SearchFields: t.searchable,
		Filters:      t.filters,
		Sort:         t.sort,
	}
}

func (t *Table) recompute() {
	t.filtered = Apply(t.data, t.query())
}

func (t *Table) notifySelection() {
	if t.cfg.OnSelect != nil {
		t.cfg.OnSelect(t.sel.Resolve(t.data))
	}
}
