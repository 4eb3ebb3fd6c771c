package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(rows []Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["id"]
	}
	return out
}

func peopleRows() []Row {
	return []Row{
		{"id": 1, "name": "Angelique Morse", "status": "Active Host", "role": "admin"},
		{"id": 2, "name": "Ariana Lang", "status": "Pending Host", "role": "user"},
		{"id": 3, "name": "Aspen Schmitt", "status": "Active Guest", "role": "user"},
		{"id": 4, "name": "Brycen Jimenez", "status": "Active Host", "role": "manager"},
		{"id": 5, "name": "Chase Day", "status": "Anonymous Guest"},
	}
}

var peopleTabs = []StatusTab{
	{Label: "All", Value: "all"},
	{Label: "Active Host", Value: "Active Host"},
	{Label: "Pending Host", Value: "Pending Host"},
}

func TestApplyStatusTab(t *testing.T) {
	data := []Row{{"id": 1, "status": "Active Host"}, {"id": 2, "status": "Pending Host"}}
	tabs := []StatusTab{{Value: "all"}, {Value: "Active Host"}}

	got := Apply(data, Query{Tabs: tabs, StatusField: "status", Tab: 1})
	if diff := cmp.Diff([]any{1}, ids(got)); diff != "" {
		t.Fatalf("tab 1 mismatch (-want +got):\n%s", diff)
	}

	all := Apply(data, Query{Tabs: tabs, StatusField: "status", Tab: 0})
	if len(all) != 2 {
		t.Fatalf("tab 0 should not filter, got %d rows", len(all))
	}
}

func TestApplyTabWithoutStatusFieldIsIgnored(t *testing.T) {
	got := Apply(peopleRows(), Query{Tabs: peopleTabs, Tab: 1})
	if len(got) != 5 {
		t.Fatalf("expected no filtering without a status field, got %d", len(got))
	}
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	got := Apply(peopleRows(), Query{Search: "angel", SearchFields: []string{"name"}})
	if diff := cmp.Diff([]any{1}, ids(got)); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
	got = Apply(peopleRows(), Query{Search: "MORSE", SearchFields: []string{"name"}})
	if len(got) != 1 {
		t.Fatalf("expected upper case search to match, got %d", len(got))
	}
}

func TestApplySearchMissingFieldDoesNotMatch(t *testing.T) {
	got := Apply(peopleRows(), Query{Search: "user", SearchFields: []string{"role"}})
	if diff := cmp.Diff([]any{2, 3}, ids(got)); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySearchStringifiesNumbers(t *testing.T) {
	got := Apply(peopleRows(), Query{Search: "4", SearchFields: []string{"id"}})
	if diff := cmp.Diff([]any{4}, ids(got)); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFieldFiltersCompose(t *testing.T) {
	q := Query{Filters: map[string]string{"role": "user", "status": "Active Guest"}}
	got := Apply(peopleRows(), q)
	if diff := cmp.Diff([]any{3}, ids(got)); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFieldFilterAllAndEmptyAreNoConstraint(t *testing.T) {
	for _, v := range []string{"", AllValue} {
		got := Apply(peopleRows(), Query{Filters: map[string]string{"role": v}})
		if len(got) != 5 {
			t.Errorf("filter %q: expected 5 rows, got %d", v, len(got))
		}
	}
}

func TestApplyIsSubsetAndIdempotent(t *testing.T) {
	data := peopleRows()
	q := Query{
		Tabs:         peopleTabs,
		StatusField:  "status",
		Tab:          1,
		Search:       "a",
		SearchFields: []string{"name"},
		Filters:      map[string]string{"role": "admin"},
	}
	once := Apply(data, q)
	twice := Apply(once, q)
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Fatalf("apply is not idempotent (-once +twice):\n%s", diff)
	}
	in := map[any]bool{}
	for _, r := range data {
		in[r["id"]] = true
	}
	for _, r := range once {
		if !in[r["id"]] {
			t.Fatalf("row %v not in input", r["id"])
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	data := peopleRows()
	before := ids(data)
	Apply(data, Query{Sort: &SortConfig{Key: "name", Direction: Desc}, Search: "a", SearchFields: []string{"name"}})
	if diff := cmp.Diff(before, ids(data)); diff != "" {
		t.Fatalf("input reordered (-before +after):\n%s", diff)
	}
}

func TestApplyEmpty(t *testing.T) {
	got := Apply(nil, Query{Tabs: peopleTabs, StatusField: "status", Tab: 1, Search: "x", SearchFields: []string{"name"}, Sort: &SortConfig{Key: "name"}})
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d", len(got))
	}
}

func TestSearchFieldsDefaultsToSearchableColumns(t *testing.T) {
	cols := []Column{
		{Key: "name"},
		{Key: "avatar", Searchable: Searchable(false)},
		{Key: "email", Searchable: Searchable(true)},
	}
	if diff := cmp.Diff([]string{"name", "email"}, SearchFields(cols, nil)); diff != "" {
		t.Fatalf("search fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"avatar"}, SearchFields(cols, []string{"avatar"})); diff != "" {
		t.Fatalf("explicit fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByStatus(t *testing.T) {
	got := CountByStatus(peopleRows(), "status", peopleTabs)
	want := []int{5, 2, 1}
	for i, tab := range got {
		if tab.Count != want[i] {
			t.Errorf("tab %d: expected count %d, got %d", i, want[i], tab.Count)
		}
	}
	if peopleTabs[0].Count != 0 {
		t.Fatalf("input tabs were modified")
	}
}
