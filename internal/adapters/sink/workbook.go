// Package sink writes the merged report to disk.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/quizmerge/internal/domain/report"
	"github.com/okian/quizmerge/pkg/logger"
)

const (
	defaultSheet = "Sheet1"
	dirPerm      = 0o755
)

// Workbook writes one xlsx file per report, one sheet per view.
type Workbook struct {
	dir      string
	fileName string
	now      func() time.Time
	logger   logger.Logger
}

// NewWorkbook creates a writer targeting dir.
func NewWorkbook(dir string, opts ...Option) *Workbook {
	w := &Workbook{
		dir:    dir,
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DefaultFileName is the dated output name, e.g.
// merged_sessions_generated_7_3_2025.xlsx.
func DefaultFileName(t time.Time) string {
	return fmt.Sprintf("merged_sessions_generated_%d_%d_%d.xlsx", t.Day(), int(t.Month()), t.Year())
}

// Path returns the file the next Write will produce.
func (w *Workbook) Path() string {
	name := w.fileName
	if name == "" {
		name = DefaultFileName(w.now())
	}
	return filepath.Join(w.dir, name)
}

// Write stores r and returns the written path. Sheets keep their report
// order; nil cells are left blank.
func (w *Workbook) Write(ctx context.Context, r report.Report) (string, error) {
	if len(r.Sheets) == 0 {
		return "", ErrEmptyReport
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range r.Sheets {
		idx, err := f.NewSheet(s.Name)
		if err != nil {
			return "", fmt.Errorf("create sheet %q: %w", s.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeSheet(f, s); err != nil {
			return "", err
		}
	}
	if !hasSheet(r, defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return "", fmt.Errorf("remove default sheet: %w", err)
		}
	}

	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := w.Path()
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	w.logger.Info(ctx, "report written",
		logger.String("path", path),
		logger.Int("sheets", len(r.Sheets)),
	)
	return path, nil
}

func writeSheet(f *excelize.File, s report.Sheet) error {
	if err := setRow(f, s.Name, 1, toAny(s.Columns)); err != nil {
		return err
	}
	for i, row := range s.Rows {
		if err := setRow(f, s.Name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes the non-nil values of row at the given 1-based row number.
func setRow(f *excelize.File, sheet string, n int, row []any) error {
	for col, v := range row {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, n)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func hasSheet(r report.Report, name string) bool {
	_, ok := r.Sheet(name)
	return ok
}
