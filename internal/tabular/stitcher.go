package tabular

// Stitcher recombines logical tables that the extractor split across
// consecutive pages. It performs no I/O and keeps no state between calls.
type Stitcher struct{}

// NewStitcher creates a stitcher.
func NewStitcher() *Stitcher {
	return &Stitcher{}
}

// stitchChain is the single open accumulator during one stitching pass:
// the rows merged so far plus the last page absorbed.
type stitchChain struct {
	page int
	grid Grid
}

// Stitch folds the ordered fragment sequence into logical tables. A fragment
// merges into the open chain only when it sits on the immediately following
// page and has exactly the chain's column count; any other fragment seals the
// chain and opens a new one. Empty input yields an empty result.
func (s *Stitcher) Stitch(fragments []Fragment) []LogicalTable {
	if len(fragments) == 0 {
		return nil
	}

	var tables []LogicalTable
	chain := openChain(fragments[0])

	for _, frag := range fragments[1:] {
		if !chain.accepts(frag) {
			tables = append(tables, chain.seal())
			chain = openChain(frag)
			continue
		}
		chain.absorb(frag)
	}

	return append(tables, chain.seal())
}

func openChain(frag Fragment) stitchChain {
	// Own outer slice so later appends never touch the fragment's backing
	// array. Rows themselves are shared; nothing mutates them.
	grid := make(Grid, len(frag.Grid))
	copy(grid, frag.Grid)
	return stitchChain{page: frag.Page, grid: grid}
}

// accepts reports whether the fragment continues this chain. Non-adjacent
// pages never merge even with matching widths, and a width mismatch is a
// hard signal of an unrelated table even on an adjacent page.
func (c *stitchChain) accepts(frag Fragment) bool {
	return frag.Page == c.page+1 && frag.Grid.Columns() == c.grid.Columns()
}

func (c *stitchChain) absorb(frag Fragment) {
	rows := frag.Grid
	if len(rows) > 0 && len(c.grid) > 0 && repeatsHeader(c.grid[0], rows[0]) {
		rows = rows[1:]
	}
	c.grid = append(c.grid, rows...)
	c.page = frag.Page
}

func (c *stitchChain) seal() LogicalTable {
	return LogicalTable{Page: c.page, Grid: c.grid}
}

// repeatsHeader reports whether row duplicates the chain header. A majority
// vote over cell-by-cell equality, rather than exact row equality, tolerates
// OCR noise in repeated header text.
func repeatsHeader(header, row []string) bool {
	matches := 0
	for i, cell := range row {
		if i < len(header) && cell == header[i] {
			matches++
		}
	}
	return matches*2 > len(row)
}
