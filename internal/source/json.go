// Package source loads fragment documents for the pipeline. The JSON layout
// mirrors the extraction collaborator's boundary contract: an ordered array
// of per-page grids, already text-normalized by the extractor.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agripipe/tablemend/internal/pipeline"
	"github.com/agripipe/tablemend/internal/tabular"
)

// ErrBadPage signals a fragment with a page number below 1.
var ErrBadPage = errors.New("fragment page must be >= 1")

// fragmentRecord is one page's entry in a fragment document file.
type fragmentRecord struct {
	Page int        `json:"page"`
	Grid [][]string `json:"grid"`
}

// JSONFile loads one document per *.json file. File order is preserved as
// document order; grids are width-normalized on read so the core never sees
// a ragged fragment.
type JSONFile struct{}

// NewJSONFile creates a JSON fragment source.
func NewJSONFile() *JSONFile {
	return &JSONFile{}
}

// Load reads the fragment file at ref. The document is named after the file
// without its extension.
func (s *JSONFile) Load(_ context.Context, ref string) (pipeline.Document, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("read fragments: %w", err)
	}

	var records []fragmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return pipeline.Document{}, fmt.Errorf("parse fragments %s: %w", ref, err)
	}

	fragments := make([]tabular.Fragment, 0, len(records))
	for i, rec := range records {
		if rec.Page < 1 {
			return pipeline.Document{}, fmt.Errorf("fragment %d of %s: %w", i, ref, ErrBadPage)
		}
		fragments = append(fragments, tabular.Fragment{
			Page: rec.Page,
			Grid: tabular.Normalize(rec.Grid),
		})
	}

	name := filepath.Base(ref)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return pipeline.Document{Name: name, Fragments: fragments}, nil
}
