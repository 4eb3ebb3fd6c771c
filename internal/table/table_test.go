package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newPeopleTable(t *testing.T, selected *[]Row) *Table {
	t.Helper()
	return New(Config{
		Title: "Users",
		Columns: []Column{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "status", Label: "Status", Sortable: true},
			{Key: "role", Label: "Role"},
		},
		Tabs:        peopleTabs,
		StatusField: "status",
		RowsPerPage: 2,
		OnSelect: func(rows []Row) {
			if selected != nil {
				*selected = rows
			}
		},
	}, peopleRows())
}

func TestNewDefaults(t *testing.T) {
	tbl := New(Config{Columns: []Column{{Key: "id", Label: "ID"}}}, nil)
	require.Equal(t, DefaultRowsPerPage, tbl.RowsPerPage())
	require.Equal(t, DefaultRowsPerPageOptions, tbl.RowsPerPageOptions())
	require.Equal(t, DefaultIDField, tbl.Config().IDField)

	v := tbl.View()
	require.Empty(t, v.Rows)
	require.Zero(t, v.Total)
	require.False(t, v.AllSelected)
	require.False(t, v.Indeterminate)
}

func TestTabSwitchKeepsPage(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.SetPage(1)
	tbl.SetTab(1)
	require.Equal(t, 1, tbl.Page())
	// Two active hosts fit on page 0, so page 1 is now empty.
	require.Empty(t, tbl.PageRows())
	require.Equal(t, 2, tbl.View().Total)
}

func TestSetTabWithoutTabs(t *testing.T) {
	tbl := New(Config{Columns: []Column{{Key: "id", Label: "ID"}}}, []Row{{"id": 1}})
	tbl.SetTab(1)
	tbl.SetTab(2)
	require.Zero(t, tbl.Tab())
	require.Zero(t, tbl.View().Tab)
	require.Len(t, tbl.Filtered(), 1)
}

func TestSearchAndFilterResetPage(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.SetPage(2)
	tbl.SetSearch("a")
	require.Equal(t, 0, tbl.Page())

	tbl.SetPage(1)
	tbl.SetFilter("role", "user")
	require.Equal(t, 0, tbl.Page())
	require.Equal(t, map[string]string{"role": "user"}, tbl.Filters())
}

func TestSortDoesNotResetPage(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.SetPage(1)
	tbl.ToggleSort("name")
	require.Equal(t, 1, tbl.Page())
	require.Equal(t, &SortConfig{Key: "name", Direction: Asc}, tbl.Sort())
	tbl.ToggleSort("name")
	require.Equal(t, Desc, tbl.Sort().Direction)
	require.Equal(t, "Chase Day", tbl.Filtered()[0]["name"])
}

func TestRowsPerPageResetsPage(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.SetPage(2)
	tbl.SetRowsPerPage(25)
	require.Equal(t, 0, tbl.Page())
	require.Len(t, tbl.PageRows(), 5)

	tbl.SetRowsPerPage(0)
	require.Equal(t, 25, tbl.RowsPerPage(), "non-positive sizes are ignored")
}

func TestNextPrevPageBounds(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.PrevPage()
	require.Equal(t, 0, tbl.Page())
	tbl.NextPage()
	tbl.NextPage()
	tbl.NextPage()
	require.Equal(t, 2, tbl.Page(), "five rows at two per page is three pages")
}

func TestSelectionPersistsAcrossPages(t *testing.T) {
	var selected []Row
	tbl := newPeopleTable(t, &selected)

	r := tbl.PageRows()[0]
	tbl.ToggleRow(r)
	require.Len(t, selected, 1)

	tbl.NextPage()
	require.False(t, tbl.View().Indeterminate)
	tbl.PrevPage()
	require.True(t, tbl.IsSelected(r))
	require.True(t, tbl.View().Indeterminate)

	tbl.SetSearch("zzz")
	tbl.SetSearch("")
	require.True(t, tbl.IsSelected(r))
}

func TestSelectAllOnPageScope(t *testing.T) {
	var selected []Row
	tbl := newPeopleTable(t, &selected)

	tbl.SelectAllOnPage(true)
	require.Equal(t, []any{1, 2}, ids(selected))
	require.True(t, tbl.View().AllSelected)

	tbl.SetRowsPerPage(1)
	require.Equal(t, []any{1, 2}, ids(tbl.Selected()))

	tbl.SetRowsPerPage(5)
	v := tbl.View()
	require.False(t, v.AllSelected)
	require.True(t, v.Indeterminate)

	tbl.SetRowsPerPage(2)
	tbl.NextPage()
	tbl.ToggleRow(tbl.PageRows()[0])
	tbl.PrevPage()
	tbl.SelectAllOnPage(false)
	require.Equal(t, []any{3}, ids(selected), "rows on other pages stay selected")
}

func TestSelectionResolvesAgainstNewData(t *testing.T) {
	var selected []Row
	tbl := newPeopleTable(t, &selected)
	tbl.ToggleRow(Row{"id": 2})
	require.Equal(t, "Ariana Lang", selected[0]["name"])

	tbl.SetData([]Row{{"id": 2, "name": "Ariana Lang-Smith"}, {"id": 9, "name": "New"}})
	require.Equal(t, "Ariana Lang-Smith", selected[0]["name"])

	tbl.SetData(nil)
	require.Empty(t, selected)
	tbl.ClearSelection()
	require.Zero(t, tbl.View().Selected)
}

func TestRowMenu(t *testing.T) {
	var edited, acted Row
	tbl := New(Config{
		Columns:  []Column{{Key: "name", Label: "Name"}},
		OnEdit:   func(r Row) { edited = r },
		OnAction: func(r Row) { acted = r },
	}, peopleRows())

	_, open := tbl.MenuRow()
	require.False(t, open)

	tbl.OpenMenu(tbl.Data()[0])
	tbl.OpenMenu(tbl.Data()[1])
	r, open := tbl.MenuRow()
	require.True(t, open)
	require.Equal(t, 2, r["id"], "opening a second menu replaces the first")

	tbl.MenuEdit()
	require.Equal(t, 2, edited["id"])
	_, open = tbl.MenuRow()
	require.False(t, open)

	tbl.OpenMenu(tbl.Data()[3])
	tbl.MenuDelete()
	require.Equal(t, 4, acted["id"])

	acted = nil
	tbl.MenuDelete()
	require.Nil(t, acted, "a closed menu invokes nothing")
}

func TestExportScenario(t *testing.T) {
	tbl := New(Config{Columns: []Column{
		{Key: "name", Label: "name"},
		{Key: "email", Label: "email"},
	}}, []Row{
		{"name": "Alice", "email": "alice@x.com"},
		{"name": "Bob", "email": "bob@x.com"},
	})
	var buf bytes.Buffer
	require.NoError(t, tbl.Export(&buf))
	require.Equal(t, "name,email\nAlice,alice@x.com\nBob,bob@x.com", buf.String())
}

func TestExportUsesFullDataAndRawValues(t *testing.T) {
	tbl := New(Config{Columns: []Column{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name", Render: func(v any, _ Row) string { return "<" + FormatValue(v) + ">" }},
	}}, []Row{{"id": 1, "name": "a"}, {"id": 2, "name": "b"}, {"id": 3}})
	tbl.SetSearch("a")
	tbl.SetRowsPerPage(1)

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(&buf))
	require.Equal(t, "ID,Name\n1,a\n2,b\n3,", buf.String())
}

func TestExportQuotesEmbeddedSeparators(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Column{{Key: "v", Label: "Value"}}, []Row{{"v": `a,"b"`}})
	require.NoError(t, err)
	require.Equal(t, "Value\n\"a,\"\"b\"\"\"", buf.String())
}

func TestExportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	tbl := New(Config{Columns: []Column{{Key: "name", Label: "Name"}}}, []Row{{"name": "Alice"}})
	path, err := tbl.ExportFile(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ExportFileName), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Name\nAlice", string(data))
}

func TestPrintRendersCurrentPage(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	var gotTitle, gotText string
	err := tbl.Print(PrinterFunc(func(title, text string) error {
		gotTitle, gotText = title, text
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, "Users", gotTitle)
	require.True(t, strings.Contains(gotText, "Angelique Morse"))
	require.False(t, strings.Contains(gotText, "Chase Day"), "only the visible page is printed")
}

func TestViewSnapshot(t *testing.T) {
	tbl := newPeopleTable(t, nil)
	tbl.SetTab(1)
	tbl.ToggleRow(tbl.PageRows()[0])
	v := tbl.View()
	want := View{
		Rows:          []Row{peopleRows()[0], peopleRows()[3]},
		Total:         2,
		Page:          0,
		RowsPerPage:   2,
		PageCount:     1,
		AllSelected:   false,
		Indeterminate: true,
		Selected:      1,
		Tab:           1,
		Tabs:          peopleTabs,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}
