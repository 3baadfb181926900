package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/pkg/logger"
)

// Defaults matching the quiz platform's report export.
const (
	DefaultSheet     = "Final Scores"
	DefaultHeaderRow = 3

	workbookExt    = ".xlsx"
	lockFilePrefix = "~$"
)

// SessionDir lists and reads session workbooks from one directory. Each
// workbook is one session; its id is the file name.
type SessionDir struct {
	dir       string
	sheet     string
	headerRow int
	logger    logger.Logger
}

// NewSessionDir creates a session source over dir.
func NewSessionDir(dir string, opts ...Option) *SessionDir {
	d := &SessionDir{
		dir:       dir,
		sheet:     DefaultSheet,
		headerRow: DefaultHeaderRow,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// List returns the workbook file names in lexicographic order. Editor lock
// files and non-workbooks are skipped.
func (d *SessionDir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, lockFilePrefix) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), workbookExt) {
			d.logger.Debug(ctx, "skipping non-workbook", logger.String("file", name))
			continue
		}
		ids = append(ids, name)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSessions, d.dir)
	}
	sort.Strings(ids)
	return ids, nil
}

// Session reads the workbook named id. Cells are returned unformatted so the
// resolver sees the stored numbers.
func (d *SessionDir) Session(ctx context.Context, id string) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}

	f, err := excelize.OpenFile(filepath.Join(d.dir, id))
	if err != nil {
		return model.Session{}, fmt.Errorf("open %s: %w", id, err)
	}
	defer func() { _ = f.Close() }()

	if idx, err := f.GetSheetIndex(d.sheet); err != nil || idx < 0 {
		return model.Session{}, fmt.Errorf("%w: %q in %s", ErrMissingSheet, d.sheet, id)
	}
	rows, err := f.GetRows(d.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Session{}, fmt.Errorf("read %s: %w", id, err)
	}

	table := model.Table{}
	if len(rows) >= d.headerRow {
		table.Header = rows[d.headerRow-1]
		table.Rows = rows[d.headerRow:]
	}
	return sessionFromTable(id, table)
}

func sessionFromTable(id string, t model.Table) (model.Session, error) {
	cols := [3]int{}
	for i, name := range []string{model.PlayerHeader, model.ScoreHeader, model.CorrectHeader} {
		if cols[i] = t.Column(name); cols[i] < 0 {
			return model.Session{}, fmt.Errorf("%w: %q in %s", ErrMissingColumn, name, id)
		}
	}
	player, score, correct := cols[0], cols[1], cols[2]

	s := model.Session{Name: model.SessionName(id), Rows: make([]model.SessionRow, 0, len(t.Rows))}
	for _, r := range t.Rows {
		s.Rows = append(s.Rows, model.SessionRow{
			Player:  cell(r, player),
			Score:   cell(r, score),
			Correct: cell(r, correct),
		})
	}
	return s, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
