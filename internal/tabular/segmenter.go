package tabular

import (
	"sort"
	"strings"
)

// Segmenter cuts a logical table that actually holds several independent
// tables concatenated together. Anchor rows (rows mentioning the grouping-key
// marker) are evidence for boundaries; each anchor's true start is resolved
// by a bounded backward scan for a title marker.
type Segmenter struct {
	cfg Config
}

// NewSegmenter creates a segmenter with the given heuristic configuration.
func NewSegmenter(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// Segment splits the table at resolved anchor starts. The returned sub-grids
// partition the input rows exactly: no gaps, no overlaps, original row order.
// A table with no anchors comes back whole as a single sub-table.
func (s *Segmenter) Segment(table LogicalTable) []Grid {
	grid := table.Grid
	anchors := s.findAnchors(grid)
	if len(anchors) == 0 {
		return []Grid{grid}
	}

	starts := make([]int, len(anchors))
	for i, anchor := range anchors {
		starts[i] = s.resolveStart(grid, anchor)
	}
	// A long lookback can resolve a later anchor above an earlier one's
	// start; reorder so every span stays non-negative.
	sort.Ints(starts)

	out := make([]Grid, 0, len(starts))
	for i := range starts {
		start := starts[i]
		if i == 0 {
			// A sheet holding several tables begins at the top of its
			// first one; the resolved start is only trusted for interior
			// boundaries. Preserved original behavior.
			start = 0
		}
		end := len(grid)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out = append(out, grid.Slice(start, end))
	}
	return out
}

// findAnchors returns, in row order, every row with a cell mentioning the
// grouping-key marker.
func (s *Segmenter) findAnchors(grid Grid) []int {
	marker := strings.ToLower(s.cfg.GroupKeyMarker)
	var anchors []int
	for i, row := range grid {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), marker) {
				anchors = append(anchors, i)
				break
			}
		}
	}
	return anchors
}

// resolveStart scans backward from the anchor, at most LookbackRows and never
// before row 0, for a row containing a title marker. Without one it falls
// back to a fixed offset above the anchor, the usual height of a category
// header sitting directly over the marker row.
func (s *Segmenter) resolveStart(grid Grid, anchor int) int {
	limit := anchor - s.cfg.LookbackRows
	if limit < 0 {
		limit = 0
	}
	for i := anchor; i >= limit; i-- {
		text := strings.ToLower(grid.RowText(i))
		for _, marker := range s.cfg.TitleMarkers {
			if strings.Contains(text, marker) {
				return i
			}
		}
	}

	start := anchor - s.cfg.FallbackOffset
	if start < 0 {
		start = 0
	}
	return start
}
