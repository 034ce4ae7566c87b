// Package sink persists reconstructed tables. The CSV directory sink is the
// reference persistence collaborator: one plain CSV file per named table,
// grouped per document. Name sanitization for the filesystem lives here, not
// in the core.
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agripipe/tablemend/internal/pipeline"
)

const dirPerm = 0o750

// CSVDir writes each document's tables under <root>/<document>/<table>.csv.
type CSVDir struct {
	root string
}

// NewCSVDir creates a sink rooted at dir.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{root: dir}
}

// Write persists the tables for one document. A document with no kept tables
// produces no directory.
func (s *CSVDir) Write(ctx context.Context, doc string, tables []pipeline.NamedTable) error {
	if len(tables) == 0 {
		return nil
	}

	dir := filepath.Join(s.root, sanitize(doc))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, sanitize(table.Name)+".csv")
		if err := writeCSV(path, table.Grid); err != nil {
			return fmt.Errorf("write table %s: %w", table.Name, err)
		}
	}
	return nil
}

func writeCSV(path string, grid [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	for _, row := range grid {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitize keeps table and document names filesystem-safe. Anything outside
// a conservative character set becomes an underscore.
func sanitize(name string) string {
	if name == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
