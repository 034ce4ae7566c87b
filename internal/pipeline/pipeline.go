package pipeline

import (
	"context"
	"fmt"

	"github.com/agripipe/tablemend/internal/tabular"
)

// Document is one extraction unit: a named, ordered sequence of per-page
// fragments supplied by the extraction collaborator.
type Document struct {
	Name      string
	Fragments []tabular.Fragment
}

// NamedTable pairs a reconstructed table with the name it will be persisted
// under. Names carry provenance only; any length or character restrictions of
// the output container are the sink's concern.
type NamedTable struct {
	Name string
	Grid tabular.Grid
}

// Source loads one document's fragments. Implementations wrap whatever
// produced the extraction (the core never performs extraction itself).
type Source interface {
	Load(ctx context.Context, ref string) (Document, error)
}

// Sink persists a document's kept tables as named sheets.
type Sink interface {
	Write(ctx context.Context, doc string, tables []NamedTable) error
}

// Result summarizes one document's pass through the pipeline.
type Result struct {
	Name      string
	Tables    []NamedTable
	Discarded map[tabular.Reason]int
}

// Kept returns how many tables survived classification.
func (r Result) Kept() int {
	return len(r.Tables)
}

// Processor feeds fragments through stitching, segmentation and
// classification, in that order. Stitching must come first so that
// segmentation sees whole tables; segmentation must come before
// classification so that each candidate is a single table.
type Processor struct {
	stitcher   *tabular.Stitcher
	segmenter  *tabular.Segmenter
	classifier *tabular.Classifier
}

// NewProcessor wires the three stages around one heuristic configuration.
func NewProcessor(cfg tabular.Config) *Processor {
	return &Processor{
		stitcher:   tabular.NewStitcher(),
		segmenter:  tabular.NewSegmenter(cfg),
		classifier: tabular.NewClassifier(cfg),
	}
}

// Process reconstructs and filters one document's tables. Stitched tables are
// named Table_<i>_EndsP<page>; when segmentation splits one, each part gains
// a _P<k> suffix. Discards are tallied by reason for diagnosability.
func (p *Processor) Process(doc Document) Result {
	res := Result{
		Name:      doc.Name,
		Discarded: make(map[tabular.Reason]int),
	}

	for i, table := range p.stitcher.Stitch(doc.Fragments) {
		base := fmt.Sprintf("Table_%d_EndsP%d", i+1, table.Page)
		parts := p.segmenter.Segment(table)
		for k, part := range parts {
			name := base
			if len(parts) > 1 {
				name = fmt.Sprintf("%s_P%d", base, k+1)
			}
			verdict := p.classifier.Classify(part)
			if !verdict.Keep {
				res.Discarded[verdict.Reason]++
				continue
			}
			res.Tables = append(res.Tables, NamedTable{Name: name, Grid: part})
		}
	}
	return res
}
