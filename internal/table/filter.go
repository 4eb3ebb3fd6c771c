package table

import "strings"

// Query is every input of the filter pipeline besides the rows themselves.
type Query struct {
	Tabs         []StatusTab
	StatusField  string
	Tab          int
	Search       string
	SearchFields []string
	Filters      map[string]string
	Sort         *SortConfig
}

// Apply runs the status tab, search, field filter and sort stages in that
// order and returns a new slice. The input slice is never modified.
func Apply(rows []Row, q Query) []Row {
	out := make([]Row, 0, len(rows))
	out = append(out, rows...)

	if status, ok := activeStatus(q); ok {
		out = keep(out, func(r Row) bool { return valueEquals(r[q.StatusField], status) })
	}

	if q.Search != "" && len(q.SearchFields) > 0 {
		needle := strings.ToLower(q.Search)
		out = keep(out, func(r Row) bool { return matchesSearch(r, q.SearchFields, needle) })
	}

	for field, want := range q.Filters {
		if !filterActive(want) {
			continue
		}
		out = keep(out, func(r Row) bool { return valueEquals(r[field], want) })
	}

	if q.Sort != nil {
		SortRows(out, *q.Sort)
	}
	return out
}

// SearchFields returns the explicit field list when given, otherwise the keys
// of every column not marked unsearchable.
func SearchFields(columns []Column, explicit []string) []string {
	if explicit != nil {
		return explicit
	}
	fields := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.IsSearchable() {
			fields = append(fields, c.Key)
		}
	}
	return fields
}

// CountByStatus fills in the Count of every tab from rows. Tab 0 counts all rows.
func CountByStatus(rows []Row, statusField string, tabs []StatusTab) []StatusTab {
	out := make([]StatusTab, len(tabs))
	copy(out, tabs)
	for i := range out {
		if i == 0 {
			out[i].Count = len(rows)
			continue
		}
		n := 0
		for _, r := range rows {
			if valueEquals(r[statusField], out[i].Value) {
				n++
			}
		}
		out[i].Count = n
	}
	return out
}

func activeStatus(q Query) (string, bool) {
	if q.StatusField == "" || q.Tab <= 0 || q.Tab >= len(q.Tabs) {
		return "", false
	}
	return q.Tabs[q.Tab].Value, true
}

func filterActive(v string) bool {
	return v != "" && v != AllValue
}

func matchesSearch(r Row, fields []string, needle string) bool {
	for _, f := range fields {
		v, ok := r[f]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(formatValue(v)), needle) {
			return true
		}
	}
	return false
}

// valueEquals compares a row value against a literal filter value.
func valueEquals(v any, want string) bool {
	if v == nil {
		return false
	}
	return formatValue(v) == want
}

func keep(rows []Row, pred func(Row) bool) []Row {
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
