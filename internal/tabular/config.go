package tabular

// Config holds every tunable used by the stitching, segmentation and
// classification heuristics. It is built once and passed explicitly into each
// component constructor; components never reach for global state, so tests
// can vary any threshold per case.
type Config struct {
	// GroupKeyMarker is the label that introduces a table's category row
	// (an anchor row), matched case-insensitively as a substring.
	GroupKeyMarker string

	// TargetNames are category names that qualify a table for keeping.
	TargetNames []string

	// CompetingNames are category names that disqualify a table when they
	// appear on the marker row (or, without a marker, anywhere in the
	// header window alongside no target name).
	CompetingNames []string

	// TitleMarkers are phrases that mark a table's true top edge during the
	// segmenter's backward scan. Matched case-insensitively.
	TitleMarkers []string

	// StopWords are sentence-structure words used to spot narrative prose.
	// Each entry is padded with spaces so substrings of longer words never
	// match. Common prepositions are left out on purpose: legitimate
	// headers contain them ("Prices in Pesos").
	StopWords []string

	// LookbackRows bounds the segmenter's backward title scan, inclusive of
	// the anchor row itself.
	LookbackRows int

	// FallbackOffset is how many rows above an anchor the table is assumed
	// to start when no title marker is found in the lookback window.
	FallbackOffset int

	// HeaderScanRows is the number of leading rows inspected for labels;
	// headers in this domain often span several lines.
	HeaderScanRows int

	// EarlyColumns is how many leading columns the cell-length bound covers.
	EarlyColumns int

	// MaxCellLength is the longest cell (in characters) tolerated in the
	// early columns before the grid is treated as wrapped text.
	MaxCellLength int

	// MinDigitDensity is the minimum ratio of digit characters to total
	// characters for a grid to count as tabular data.
	MinDigitDensity float64

	// StopWordLimit is how many distinct stop-words mark a grid as prose.
	StopWordLimit int
}

// DefaultConfig returns the reference-domain configuration: commodity-keyed
// agricultural report tables filtered for rice.
func DefaultConfig() Config {
	return Config{
		GroupKeyMarker: "commodity",
		TargetNames:    []string{"rice"},
		CompetingNames: []string{"corn", "wheat"},
		TitleMarkers:   []string{"psd table", "trade matrix", "prices table"},
		StopWords: []string{
			" the ", " is ", " that ", " are ", " with ", " they ", " was ",
		},
		LookbackRows:    15,
		FallbackOffset:  2,
		HeaderScanRows:  20,
		EarlyColumns:    5,
		MaxCellLength:   100,
		MinDigitDensity: 0.02,
		StopWordLimit:   2,
	}
}
