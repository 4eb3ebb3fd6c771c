package table

// Selection is a set of row identifiers that survives filtering and paging.
type Selection struct {
	idField string
	ids     map[string]struct{}
}

// NewSelection creates an empty selection keyed by idField.
func NewSelection(idField string) *Selection {
	if idField == "" {
		idField = DefaultIDField
	}
	return &Selection{idField: idField, ids: make(map[string]struct{})}
}

// Has reports whether the row is selected.
func (s *Selection) Has(r Row) bool {
	_, ok := s.ids[rowID(r, s.idField)]
	return ok
}

// Len returns the number of selected identifiers.
func (s *Selection) Len() int { return len(s.ids) }

// Toggle flips membership of the row's identifier.
func (s *Selection) Toggle(r Row) {
	id := rowID(r, s.idField)
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectPage adds (checked) or removes every identifier on the given page.
// Rows on other pages are left untouched.
func (s *Selection) SelectPage(page []Row, checked bool) {
	for _, r := range page {
		id := rowID(r, s.idField)
		if checked {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// AllOnPage reports whether the page is non-empty and fully selected.
func (s *Selection) AllOnPage(page []Row) bool {
	if len(page) == 0 {
		return false
	}
	for _, r := range page {
		if !s.Has(r) {
			return false
		}
	}
	return true
}

// Indeterminate reports whether some but not all page rows are selected.
func (s *Selection) Indeterminate(page []Row) bool {
	some := false
	for _, r := range page {
		if s.Has(r) {
			some = true
			break
		}
	}
	return some && !s.AllOnPage(page)
}

// Resolve returns the selected rows of data, in data order.
func (s *Selection) Resolve(data []Row) []Row {
	out := make([]Row, 0, len(s.ids))
	for _, r := range data {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}
