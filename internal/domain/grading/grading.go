// Package grading turns merged session metrics into per-identity grades.
package grading

import (
	"math"
	"sort"

	"github.com/okian/quizmerge/internal/domain/merge"
	"github.com/okian/quizmerge/internal/domain/roster"
)

// Record is the final grade line for one resolved key.
type Record struct {
	Key   string
	First string // blank for unresolved keys
	Last  string

	Missed        int // sessions without a score
	TotalScore    int
	CorrectPasses int // sessions with correct >= CorrectThreshold
	RatioPasses   int // sessions with ratio >= RatioThreshold

	SessionGrades []int // one per session, missing counted as 0
	Average       int   // truncated mean of the top-N session grades
	Points        int
}

// Grader applies a Policy to a merged table.
type Grader struct {
	policy Policy
}

// NewGrader creates a Grader with configuration options.
func NewGrader(opts ...Option) (*Grader, error) {
	g := &Grader{policy: DefaultPolicy()}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	if err := g.policy.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Policy returns the policy in effect.
func (g *Grader) Policy() Policy { return g.policy }

// SessionGrade maps a correct-answer count onto 0..100.
func SessionGrade(correct int) int {
	grade := (correct - gradeFloor) * pointsPerAnswer
	return max(0, min(maxGrade, grade))
}

// Grade computes a Record for every row of t, in table order. idx supplies
// display names for keys that are roster ids; it may be nil.
func (g *Grader) Grade(t *merge.Table, idx *roster.Index) []Record {
	rows := t.Rows()
	out := make([]Record, len(rows))
	for i, row := range rows {
		rec := Record{Key: row.Key, SessionGrades: make([]int, len(row.Cells))}
		if idx != nil {
			if ident, ok := idx.Identity(row.Key); ok {
				rec.First, rec.Last = ident.First(), ident.Last()
			}
		}

		for j, c := range row.Cells {
			// Absent cells are zero-valued and never pass, whatever the thresholds.
			if !c.Present {
				rec.Missed++
				continue
			}
			rec.TotalScore += c.Score
			if c.Correct >= g.policy.CorrectThreshold {
				rec.CorrectPasses++
			}
			if c.Ratio >= g.policy.RatioThreshold {
				rec.RatioPasses++
			}
			rec.SessionGrades[j] = SessionGrade(c.Correct)
		}

		mean := g.topMean(rec.SessionGrades)
		rec.Average = int(mean)
		rec.Points = g.points(mean)
		out[i] = rec
	}
	return out
}

// topMean averages the best TopN grades; fewer sessions average over what exists.
func (g *Grader) topMean(grades []int) float64 {
	if len(grades) == 0 {
		return 0
	}
	sorted := make([]int, len(grades))
	copy(sorted, grades)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	n := min(g.policy.TopN, len(sorted))
	sum := 0
	for _, v := range sorted[:n] {
		sum += v
	}
	return float64(sum) / float64(n)
}

// points scales the untruncated mean onto MaxPoints, rounding down.
func (g *Grader) points(mean float64) int {
	p := int(math.Floor(float64(g.policy.MaxPoints) * (mean / maxGrade)))
	return max(0, min(g.policy.MaxPoints, p))
}
