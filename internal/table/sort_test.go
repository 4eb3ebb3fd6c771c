package table

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func column(rows []Row, key string) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[key]
	}
	return out
}

func TestSortNumericStrings(t *testing.T) {
	rows := []Row{{"v": "10"}, {"v": "2"}, {"v": "1"}}
	SortRows(rows, SortConfig{Key: "v", Direction: Asc})
	if diff := cmp.Diff([]any{"1", "2", "10"}, column(rows, "v")); diff != "" {
		t.Fatalf("numeric sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortNaturalStrings(t *testing.T) {
	rows := []Row{{"v": "item10"}, {"v": "item2"}, {"v": "Item1"}}
	SortRows(rows, SortConfig{Key: "v", Direction: Asc})
	if diff := cmp.Diff([]any{"Item1", "item2", "item10"}, column(rows, "v")); diff != "" {
		t.Fatalf("natural sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortDescending(t *testing.T) {
	rows := []Row{{"v": 3.0}, {"v": 10.0}, {"v": 1.0}}
	SortRows(rows, SortConfig{Key: "v", Direction: Desc})
	if diff := cmp.Diff([]any{10.0, 3.0, 1.0}, column(rows, "v")); diff != "" {
		t.Fatalf("desc sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortNullsLastInBothDirections(t *testing.T) {
	for _, dir := range []Direction{Asc, Desc} {
		rows := []Row{{"id": 1}, {"id": 2, "v": "b"}, {"id": 3, "v": nil}, {"id": 4, "v": "a"}}
		SortRows(rows, SortConfig{Key: "v", Direction: dir})
		tail := ids(rows[2:])
		if diff := cmp.Diff([]any{1, 3}, tail); diff != "" {
			t.Errorf("%s: missing values should stay last in input order (-want +got):\n%s", dir, diff)
		}
	}
}

func TestSortIsStable(t *testing.T) {
	rows := []Row{
		{"id": 1, "role": "user"},
		{"id": 2, "role": "admin"},
		{"id": 3, "role": "user"},
		{"id": 4, "role": "admin"},
		{"id": 5, "role": "user"},
	}
	SortRows(rows, SortConfig{Key: "role", Direction: Asc})
	if diff := cmp.Diff([]any{2, 4, 1, 3, 5}, ids(rows)); diff != "" {
		t.Fatalf("stable asc mismatch (-want +got):\n%s", diff)
	}
	SortRows(rows, SortConfig{Key: "role", Direction: Desc})
	if diff := cmp.Diff([]any{1, 3, 5, 2, 4}, ids(rows)); diff != "" {
		t.Fatalf("stable desc mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareMixed(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{nil, nil, 0},
		{nil, "a", 1},
		{"a", nil, -1},
		{"2", 10, -1},
		{"10", "9", 1},
		{"apple", "Banana", -1},
		{"x", "x", 0},
	}
	for _, tt := range tests {
		got := Compare(tt.a, tt.b)
		if sign(got) != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestNextSort(t *testing.T) {
	s := NextSort(nil, "name")
	if s.Key != "name" || s.Direction != Asc {
		t.Fatalf("first click: got %+v", s)
	}
	s = NextSort(s, "name")
	if s.Direction != Desc {
		t.Fatalf("second click should flip to desc, got %+v", s)
	}
	s = NextSort(s, "name")
	if s.Direction != Asc {
		t.Fatalf("third click should flip back to asc, got %+v", s)
	}
	s = NextSort(&SortConfig{Key: "name", Direction: Desc}, "email")
	if s.Key != "email" || s.Direction != Asc {
		t.Fatalf("new column should reset to asc, got %+v", s)
	}
}

func TestParseNumericText(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -1.5e2 ", -150, true},
		{"0x1A", 26, true},
		{"0b11", 3, true},
		{"Infinity", math.Inf(1), true},
		{"inf", 0, false},
		{"Inf", 0, false},
		{"NaN", 0, false},
		{"0x1p-2", 0, false},
		{"1_000", 0, false},
		{"12abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNumber(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
