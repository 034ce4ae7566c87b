package tabular

import "strings"

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Columns returns the grid's column count. Grids are expected to be
// rectangular after Normalize, so the first row's width is authoritative.
func (g Grid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// RowText returns row i's cells joined with single spaces.
func (g Grid) RowText(i int) string {
	if i < 0 || i >= len(g) {
		return ""
	}
	return strings.Join(g[i], " ")
}

// Text returns every cell of the grid joined with single spaces, in row
// order. Used for whole-grid keyword scans; digit counting iterates cells
// directly so that separators never skew character totals.
func (g Grid) Text() string {
	parts := make([]string, 0, len(g))
	for i := range g {
		parts = append(parts, strings.Join(g[i], " "))
	}
	return strings.Join(parts, " ")
}

// Slice returns the sub-grid covering rows [start, end). The returned grid
// has its own row index but shares row backing with the receiver; callers
// treat grids as immutable.
func (g Grid) Slice(start, end int) Grid {
	sub := make(Grid, end-start)
	copy(sub, g[start:end])
	return sub
}

// Normalize makes a grid rectangular by padding short rows with empty cells
// up to the widest row. Padding is chosen over truncation so that no cell
// text is ever lost to a ragged extraction. Nil rows become empty rows.
func Normalize(g Grid) Grid {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	out := make(Grid, len(g))
	for i, row := range g {
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}
