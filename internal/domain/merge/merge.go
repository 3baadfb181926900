// Package merge joins per-session summaries into one table keyed by resolved
// identity.
package merge

import (
	"fmt"
	"sort"

	"github.com/okian/quizmerge/internal/domain/model"
)

// Cell holds one key's metrics for one session. Present is false when the key
// did not appear in that session, which is distinct from a zero score.
type Cell struct {
	Present bool
	Score   int
	Correct int
	Ratio   float64
}

// Row is one key with a cell per session, in session order.
type Row struct {
	Key   string
	Cells []Cell
}

// Table is the outer union of session summaries. A Table is never mutated
// after construction; Join returns a new one.
type Table struct {
	sessions []string
	rows     []Row // sorted by key
}

// Empty returns a table with no sessions and no rows.
func Empty() *Table { return &Table{} }

// Fold left-joins summaries in the given order.
func Fold(summaries []model.SessionSummary) (*Table, error) {
	t := Empty()
	for _, s := range summaries {
		next, err := Join(t, s)
		if err != nil {
			return nil, err
		}
		t = next
	}
	return t, nil
}

// Join returns a new table with s appended as the last session. Keys missing
// from s get an absent cell; keys new in s get absent cells for every earlier
// session.
func Join(t *Table, s model.SessionSummary) (*Table, error) {
	for _, name := range t.sessions {
		if name == s.Session {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSession, s.Session)
		}
	}

	width := len(t.sessions) + 1
	incoming := make(map[string]model.SummaryRow, len(s.Rows))
	for _, r := range s.Rows {
		incoming[r.Key] = r
	}

	rows := make([]Row, 0, len(t.rows)+len(s.Rows))
	for _, r := range t.rows {
		cells := make([]Cell, width)
		copy(cells, r.Cells)
		if in, ok := incoming[r.Key]; ok {
			cells[width-1] = present(in)
			delete(incoming, r.Key)
		}
		rows = append(rows, Row{Key: r.Key, Cells: cells})
	}
	for _, in := range s.Rows {
		if _, ok := incoming[in.Key]; !ok {
			continue
		}
		cells := make([]Cell, width)
		cells[width-1] = present(in)
		rows = append(rows, Row{Key: in.Key, Cells: cells})
		delete(incoming, in.Key)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	sessions := make([]string, width)
	copy(sessions, t.sessions)
	sessions[width-1] = s.Session
	return &Table{sessions: sessions, rows: rows}, nil
}

func present(r model.SummaryRow) Cell {
	return Cell{Present: true, Score: r.Score, Correct: r.Correct, Ratio: r.Ratio}
}

// Sessions returns the session names in column order.
func (t *Table) Sessions() []string {
	out := make([]string, len(t.sessions))
	copy(out, t.sessions)
	return out
}

// Rows returns a deep copy of the rows, sorted by key.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		cells := make([]Cell, len(r.Cells))
		copy(cells, r.Cells)
		out[i] = Row{Key: r.Key, Cells: cells}
	}
	return out
}

// Cell returns the cell for key in session column i.
func (t *Table) Cell(key string, i int) (Cell, bool) {
	if i < 0 || i >= len(t.sessions) {
		return Cell{}, false
	}
	n := sort.Search(len(t.rows), func(j int) bool { return t.rows[j].Key >= key })
	if n == len(t.rows) || t.rows[n].Key != key {
		return Cell{}, false
	}
	return t.rows[n].Cells[i], true
}

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.rows) }
