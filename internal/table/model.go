package table

import (
	"fmt"
	"strconv"
)

// Row is a single caller supplied record, keyed by field name.
type Row map[string]any

// Direction is the order applied by a SortConfig.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// AllValue is the filter value that disables a field filter.
const AllValue = "all"

// DefaultIDField is used when no row identifier field is configured.
const DefaultIDField = "id"

// Column describes how one field of a Row is displayed, searched and sorted.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	// Searchable defaults to true when nil.
	Searchable *bool
	Width      int
	// Render replaces the default cell rendering when set.
	Render func(value any, row Row) string
}

// IsSearchable reports whether the column takes part in free-text search
// when no explicit searchable field list is given.
func (c Column) IsSearchable() bool {
	return c.Searchable == nil || *c.Searchable
}

// Searchable is a helper for the Column.Searchable pointer field.
func Searchable(v bool) *bool { return &v }

// StatusTab is a labeled bucket over the status field. Index 0 of a tab list
// is the "all" bucket.
type StatusTab struct {
	Label string
	Value string
	Count int
	Color Tone
}

// SortConfig is the single active sort column.
type SortConfig struct {
	Key       string
	Direction Direction
}

// FilterOption is one choice of a toolbar field filter.
type FilterOption struct {
	Label string
	Value string
}

// FieldFilter describes a toolbar select over one field.
type FieldFilter struct {
	Label   string
	Field   string
	Options []FilterOption
}

// formatValue renders a raw row value as text. Missing values render empty.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// FormatValue is the exported form of the text conversion used for search,
// filtering and export.
func FormatValue(v any) string { return formatValue(v) }

// rowID returns the identity key of a row for the selection set.
func rowID(r Row, idField string) string {
	return formatValue(r[idField])
}
