package table

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a collator ordering strings the way a person reads
// them: case and accent insensitive, digit runs compared by value.
// Collators are not safe for concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose, collate.Numeric)
}

// SortRows orders rows in place by the configured column. Rows with equal
// keys keep their relative order. Missing values always sort last.
func SortRows(rows []Row, sc SortConfig) {
	if sc.Key == "" || len(rows) < 2 {
		return
	}
	col := newCollator()
	slices.SortStableFunc(rows, func(a, b Row) int {
		return compareValues(a[sc.Key], b[sc.Key], sc.Direction, col)
	})
}

// Compare compares two raw values the way SortRows does, ascending.
func Compare(a, b any) int {
	return compareValues(a, b, Asc, newCollator())
}

func compareValues(a, b any, dir Direction, col *collate.Collator) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	var c int
	an, aok := parseNumber(a)
	bn, bok := parseNumber(b)
	if aok && bok {
		c = cmp.Compare(an, bn)
	} else {
		c = col.CompareString(formatValue(a), formatValue(b))
	}
	if dir == Desc {
		return -c
	}
	return c
}

// parseNumber reports whether v is numeric, either natively or as text.
func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, !math.IsNaN(t)
	case string:
		return parseNumericText(strings.TrimSpace(t))
	default:
		return 0, false
	}
}

// parseNumericText accepts decimal literals, the words Infinity and
// -Infinity, and unsigned 0x/0o/0b integers. ParseFloat spellings such as
// "inf", "NaN", hex floats and digit underscores are not numbers here.
func parseNumericText(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if strings.Contains(s, "_") {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if strings.TrimLeft(s, "0123456789.+-eE") != "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NextSort returns the sort config that results from clicking key while cur
// is active: same column flips direction, a new column starts ascending.
func NextSort(cur *SortConfig, key string) *SortConfig {
	if cur != nil && cur.Key == key {
		dir := Asc
		if cur.Direction == Asc {
			dir = Desc
		}
		return &SortConfig{Key: key, Direction: dir}
	}
	return &SortConfig{Key: key, Direction: Asc}
}
