package table

// Page returns the rows of the zero-based page. Pages past the end, negative
// pages and non-positive page sizes all yield an empty slice.
func Page(rows []Row, page, rowsPerPage int) []Row {
	if page < 0 || rowsPerPage <= 0 {
		return []Row{}
	}
	start := page * rowsPerPage
	if start >= len(rows) {
		return []Row{}
	}
	end := start + rowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns the number of pages needed for n rows.
func PageCount(n, rowsPerPage int) int {
	if n <= 0 || rowsPerPage <= 0 {
		return 0
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}
