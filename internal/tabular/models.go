package tabular

// Grid is a rectangular block of cell text: an ordered sequence of rows, each
// an ordered sequence of cells. Missing values are represented as empty
// strings, never as a distinguished null. Row and column counts may be zero.
type Grid [][]string

// Fragment is one page's extracted grid before cross-page stitching.
// Fragments arrive in document order and are treated as immutable.
type Fragment struct {
	Page int
	Grid Grid
}

// LogicalTable is one continuous table produced by stitching. Page is the
// page on which the table last appeared; it is carried for downstream naming
// only.
type LogicalTable struct {
	Page int
	Grid Grid
}

// Reason explains why a candidate table was kept or discarded.
type Reason string

const (
	ReasonLabelMatch     Reason = "explicit_label_match"
	ReasonLabelMismatch  Reason = "explicit_label_mismatch"
	ReasonNarrativeText  Reason = "narrative_text"
	ReasonInvalidLayout  Reason = "structurally_invalid"
	ReasonContentMatch   Reason = "content_fallback_match"
	ReasonContentNoMatch Reason = "content_fallback_no_match"
)

// Verdict is the classifier's decision for one candidate table.
type Verdict struct {
	Keep   bool
	Reason Reason
}
