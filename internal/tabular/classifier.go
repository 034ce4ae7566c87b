package tabular

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier decides whether a candidate table belongs to the target category.
// The decision is a short-circuiting sequence of layers: an explicit category
// label is trusted over everything else, then narrative-prose detection, then
// structural validity, then a content fallback. Classify is a pure function
// of the grid; nothing persists between tables.
type Classifier struct {
	cfg   Config
	steps []classifyStep
}

// classifyStep inspects one aspect of the scanned table and reports whether
// its verdict is decisive. Non-decisive steps defer to later layers.
type classifyStep func(scan tableScan) (Verdict, bool)

// tableScan carries the per-table state shared by the layers: the grid, the
// lower-cased header window, and whether the grouping-key marker appears in
// that window at all.
type tableScan struct {
	grid        Grid
	header      string
	markerFound bool
}

// NewClassifier creates a classifier with the given heuristic configuration.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{cfg: cfg}
	c.steps = []classifyStep{
		c.checkExplicitLabel,
		c.checkNarrativeText,
		c.checkStructure,
		c.checkContentFallback,
	}
	return c
}

// Classify runs the layers in priority order and returns the first decisive
// verdict. The content fallback is always decisive, so every grid resolves.
func (c *Classifier) Classify(grid Grid) Verdict {
	scan := c.scan(grid)
	for _, step := range c.steps {
		if verdict, decisive := step(scan); decisive {
			return verdict
		}
	}
	return Verdict{Keep: false, Reason: ReasonContentNoMatch}
}

func (c *Classifier) scan(grid Grid) tableScan {
	limit := c.cfg.HeaderScanRows
	if limit > len(grid) {
		limit = len(grid)
	}
	header := strings.ToLower(grid.Slice(0, limit).Text())
	return tableScan{
		grid:        grid,
		header:      header,
		markerFound: strings.Contains(header, strings.ToLower(c.cfg.GroupKeyMarker)),
	}
}

// checkExplicitLabel trusts an explicit category label over structure. The
// first header-window row that mentions the grouping-key marker decides:
// target name present keeps the table outright, a competing name discards it.
// A marker row naming neither leaves the decision to later layers.
func (c *Classifier) checkExplicitLabel(scan tableScan) (Verdict, bool) {
	if !scan.markerFound {
		return Verdict{}, false
	}
	marker := strings.ToLower(c.cfg.GroupKeyMarker)
	limit := c.cfg.HeaderScanRows
	if limit > len(scan.grid) {
		limit = len(scan.grid)
	}
	for i := 0; i < limit; i++ {
		text := strings.ToLower(scan.grid.RowText(i))
		if !strings.Contains(text, marker) {
			continue
		}
		if containsAny(text, c.cfg.TargetNames) {
			return Verdict{Keep: true, Reason: ReasonLabelMatch}, true
		}
		if containsAny(text, c.cfg.CompetingNames) {
			return Verdict{Keep: false, Reason: ReasonLabelMismatch}, true
		}
		break
	}
	return Verdict{}, false
}

// checkNarrativeText rejects grids that are really paragraphs of prose. It
// only applies when no grouping-key marker was found: a labeled table is
// never mistaken for a story. Stop-words are padded with spaces so "the"
// never matches inside "weather".
func (c *Classifier) checkNarrativeText(scan tableScan) (Verdict, bool) {
	if scan.markerFound {
		return Verdict{}, false
	}
	blob := " " + strings.ToLower(scan.grid.Text()) + " "
	distinct := 0
	for _, word := range c.cfg.StopWords {
		if strings.Contains(blob, word) {
			distinct++
		}
	}
	if distinct >= c.cfg.StopWordLimit {
		return Verdict{Keep: false, Reason: ReasonNarrativeText}, true
	}
	return Verdict{}, false
}

// checkStructure rejects grids whose physical shape does not look tabular:
// an over-long cell in the early columns means wrapped text masquerading as
// a table, and a grid with almost no digits (or no text at all) is not data.
func (c *Classifier) checkStructure(scan tableScan) (Verdict, bool) {
	invalid := Verdict{Keep: false, Reason: ReasonInvalidLayout}

	for _, row := range scan.grid {
		width := len(row)
		if width > c.cfg.EarlyColumns {
			width = c.cfg.EarlyColumns
		}
		for _, cell := range row[:width] {
			if utf8.RuneCountInString(cell) > c.cfg.MaxCellLength {
				return invalid, true
			}
		}
	}

	var digits, total int
	for _, row := range scan.grid {
		for _, cell := range row {
			for _, r := range cell {
				total++
				if unicode.IsDigit(r) {
					digits++
				}
			}
		}
	}
	if total == 0 {
		return invalid, true
	}
	if float64(digits)/float64(total) < c.cfg.MinDigitDensity {
		return invalid, true
	}
	return Verdict{}, false
}

// checkContentFallback is the last word on unlabeled tables that survived
// the prose and structure checks: keep only when the header window mentions
// a target name and no competing name. Always decisive.
func (c *Classifier) checkContentFallback(scan tableScan) (Verdict, bool) {
	if containsAny(scan.header, c.cfg.TargetNames) && !containsAny(scan.header, c.cfg.CompetingNames) {
		return Verdict{Keep: true, Reason: ReasonContentMatch}, true
	}
	return Verdict{Keep: false, Reason: ReasonContentNoMatch}, true
}

func containsAny(text string, names []string) bool {
	for _, name := range names {
		if strings.Contains(text, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
