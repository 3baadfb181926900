// Package source reads rosters and session exports from disk.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/quizmerge/internal/domain/model"
)

const utf8BOM = "\ufeff"

// RosterCSV reads a roster table from a CSV file whose first record is the
// header.
type RosterCSV struct {
	path string
}

// NewRosterCSV creates a roster source for path.
func NewRosterCSV(path string) *RosterCSV {
	return &RosterCSV{path: path}
}

// Path returns the file the roster is read from.
func (r *RosterCSV) Path() string { return r.path }

// Load reads the whole file into a table.
func (r *RosterCSV) Load(ctx context.Context) (model.Table, error) {
	if err := ctx.Err(); err != nil {
		return model.Table{}, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return model.Table{}, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadRoster(f)
}

// ReadRoster parses CSV from rd. Ragged records are accepted; the resolver
// treats short rows as empty cells.
func ReadRoster(rd io.Reader) (model.Table, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{}, nil
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("read roster header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("read roster: %w", err)
		}
		rows = append(rows, rec)
	}
	return model.Table{Header: header, Rows: rows}, nil
}
