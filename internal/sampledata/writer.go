package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/okian/quizmerge/internal/adapters/source"
)

// Layout of the generated tree below Config.Dir.
const (
	RosterFile = "students/students.csv"
	ReportsDir = "reports"

	directoryPermission = 0o750
	filePermission      = 0o600
)

// Write stores ds below dir: a roster CSV and one workbook per session laid
// out like the quiz platform's report export.
func Write(ctx context.Context, dir string, ds Dataset) error {
	if err := writeRoster(filepath.Join(dir, RosterFile), ds.Students); err != nil {
		return err
	}

	reports := filepath.Join(dir, ReportsDir)
	if err := os.MkdirAll(reports, directoryPermission); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	for _, s := range ds.Sessions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeSession(filepath.Join(reports, s.Name+".xlsx"), s); err != nil {
			return err
		}
	}
	return nil
}

func writeRoster(path string, students []Student) error {
	if err := os.MkdirAll(filepath.Dir(path), directoryPermission); err != nil {
		return fmt.Errorf("create roster dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create roster: %w", err)
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(students)+1)
	records = append(records, []string{"ID", "Name"})
	for _, st := range students {
		records = append(records, []string{st.ID, st.Name()})
	}
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write roster: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close roster: %w", err)
	}
	return nil
}

func writeSession(path string, s Session) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := source.DefaultSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	// The export carries a title block above the header row.
	rows := [][]any{
		{s.Name},
		{"Game ID: " + uuid.NewString()},
		{"Rank", "Player", "Total Score (points)", "Correct Answers", "Incorrect Answers"},
	}
	for i, r := range ranked(s.Rows) {
		rows = append(rows, []any{i + 1, r.Player, r.Score, r.Correct, max(0, s.Questions-r.Correct)})
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s: %w", s.Name, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ranked orders rows by score, highest first, as the export does.
func ranked(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
