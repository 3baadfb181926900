// Package report lays out the merged and graded data as the four output views.
package report

import (
	"fmt"
	"strconv"

	"github.com/okian/quizmerge/internal/domain/grading"
	"github.com/okian/quizmerge/internal/domain/merge"
	"github.com/okian/quizmerge/internal/domain/model"
)

// Sheet names, in output order.
const (
	SheetScores  = "Scores"
	SheetCorrect = "Correct"
	SheetRatio   = "Ratio"
	SheetFinal   = "Final Grade"
)

// Identity columns leading every sheet.
const (
	ColumnID    = "ID"
	ColumnFirst = "First Name"
	ColumnLast  = "Last Name"
)

// Summary columns.
const (
	ColumnMissed     = "Missed Sessions"
	ColumnTotalScore = "Total Score"
	ColumnAverage    = "Average"
	ColumnPoints     = "Points"
	gradeSuffix      = " Grade"
)

// Sheet is one tabular view. A nil cell is a missing value.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Report is everything handed to the output writer.
type Report struct {
	Sheets     []Sheet
	Unresolved []string // synthetic labels of names missing from the roster
}

// Sheet returns the sheet called name.
func (r Report) Sheet(name string) (Sheet, bool) {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Build produces the Scores, Correct, Ratio and Final Grade sheets. records
// must come from grading the same table.
func Build(t *merge.Table, records []grading.Record, policy grading.Policy) (Report, error) {
	rows := t.Rows()
	if len(rows) != len(records) {
		return Report{}, fmt.Errorf("%w: %d rows, %d records", ErrRecordMismatch, len(rows), len(records))
	}
	sessions := t.Sessions()

	scores := Sheet{Name: SheetScores, Columns: header(sessions, model.ScoreSuffix, ColumnMissed, ColumnTotalScore)}
	correct := Sheet{Name: SheetCorrect, Columns: header(sessions, model.CorrectSuffix, CorrectPassColumn(policy.CorrectThreshold))}
	ratio := Sheet{Name: SheetRatio, Columns: header(sessions, model.RatioSuffix, RatioPassColumn(policy.RatioThreshold))}
	final := Sheet{Name: SheetFinal, Columns: header(sessions, gradeSuffix, ColumnAverage, ColumnPoints)}

	for i, row := range rows {
		rec := records[i]
		if rec.Key != row.Key {
			return Report{}, fmt.Errorf("%w: row %d is %q, record is %q", ErrRecordMismatch, i, row.Key, rec.Key)
		}
		lead := []any{rec.Key, rec.First, rec.Last}

		s, c, r, f := leading(lead, len(sessions)+2), leading(lead, len(sessions)+1), leading(lead, len(sessions)+1), leading(lead, len(sessions)+2)
		for j, cell := range row.Cells {
			if cell.Present {
				s = append(s, cell.Score)
				c = append(c, cell.Correct)
				r = append(r, cell.Ratio)
			} else {
				s, c, r = append(s, nil), append(c, nil), append(r, nil)
			}
			f = append(f, rec.SessionGrades[j])
		}
		scores.Rows = append(scores.Rows, append(s, rec.Missed, rec.TotalScore))
		correct.Rows = append(correct.Rows, append(c, rec.CorrectPasses))
		ratio.Rows = append(ratio.Rows, append(r, rec.RatioPasses))
		final.Rows = append(final.Rows, append(f, rec.Average, rec.Points))
	}

	return Report{Sheets: []Sheet{scores, correct, ratio, final}}, nil
}

// CorrectPassColumn names the correct-answer pass count column.
func CorrectPassColumn(threshold int) string {
	return ">=" + strconv.Itoa(threshold) + " Correct"
}

// RatioPassColumn names the score-ratio pass count column.
func RatioPassColumn(threshold float64) string {
	return "Score >= " + strconv.FormatFloat(threshold, 'g', -1, 64) + "*Max"
}

func header(sessions []string, suffix string, trailing ...string) []string {
	cols := make([]string, 0, 3+len(sessions)+len(trailing))
	cols = append(cols, ColumnID, ColumnFirst, ColumnLast)
	for _, s := range sessions {
		cols = append(cols, s+suffix)
	}
	return append(cols, trailing...)
}

func leading(lead []any, extra int) []any {
	out := make([]any, len(lead), len(lead)+extra)
	copy(out, lead)
	return out
}
