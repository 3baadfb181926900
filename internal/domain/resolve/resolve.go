// Package resolve maps one session's raw rows onto roster identities and
// folds reconnects into per-identity session metrics.
package resolve

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/quizmerge/internal/domain/dedupe"
	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/internal/domain/roster"
	"github.com/okian/quizmerge/pkg/logger"
)

const ratioPrecision = 100 // two decimals

// UnresolvedPrefix marks a synthetic label that would otherwise equal a
// roster id, e.g. a player who typed their student number as a nickname.
const UnresolvedPrefix = "?"

// Participant is one row after resolution, before reconnect deduplication.
type Participant struct {
	Key      string      // roster id when resolved, synthetic label otherwise
	NameKey  namekey.Key // fingerprint of the player name
	Resolved bool
	Score    int
	Correct  int
}

// Result is the outcome of resolving one session.
type Result struct {
	Summary      model.SessionSummary
	Participants []Participant
	// Unresolved holds one name key per row that missed the roster.
	Unresolved []namekey.Key
	Rows       int // raw rows seen
	Dropped    int // rows discarded for an empty name, score or correct cell
	Merges     int // rows summed into an earlier appearance of the same key
}

// Resolver resolves session rows against a roster index. It holds no per-call
// state and is safe for concurrent use.
type Resolver struct {
	logger logger.Logger
}

// New creates a Resolver with configuration options.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve normalizes, resolves and deduplicates the rows of s.
//
// Unresolved names are kept under their synthetic label and also returned in
// Result.Unresolved. A non-numeric score or correct-answer cell fails the
// session with an *InvalidScoreError.
func (r *Resolver) Resolve(ctx context.Context, s model.Session, idx *roster.Index) (Result, error) {
	if idx == nil {
		return Result{}, roster.ErrNilRosterIndex
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", s.Name, err)
	}

	res := Result{Rows: len(s.Rows)}
	tally := dedupe.NewTally(dedupe.WithCapacityHint(len(s.Rows)))

	for i, row := range s.Rows {
		p, ok, err := r.participant(s.Name, i+1, row, idx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			res.Dropped++
			continue
		}
		if !p.Resolved {
			res.Unresolved = append(res.Unresolved, p.NameKey)
			r.logger.Debug(ctx, "unresolved identity",
				logger.String("session", s.Name),
				logger.String("name", p.Key),
			)
		}
		res.Participants = append(res.Participants, p)
		tally.Add(p.Key, p.Score, p.Correct)
	}

	res.Merges = tally.Merges()
	res.Summary = summarize(s.Name, tally)
	return res, nil
}

// participant normalizes and resolves a single row. ok is false when the row
// is dropped for an empty cell.
func (r *Resolver) participant(session string, n int, row model.SessionRow, idx *roster.Index) (Participant, bool, error) {
	scoreCell, correctCell := strings.TrimSpace(row.Score), strings.TrimSpace(row.Correct)
	if strings.TrimSpace(row.Player) == "" || scoreCell == "" || correctCell == "" {
		return Participant{}, false, nil
	}

	key := namekey.Parse(row.Player)
	if key.IsZero() {
		return Participant{}, false, nil
	}

	score, err := count(scoreCell)
	if err != nil {
		return Participant{}, false, &InvalidScoreError{Session: session, Row: n, Column: model.ScoreHeader, Value: row.Score}
	}
	correct, err := count(correctCell)
	if err != nil {
		return Participant{}, false, &InvalidScoreError{Session: session, Row: n, Column: model.CorrectHeader, Value: row.Correct}
	}

	p := Participant{NameKey: key, Score: score, Correct: correct}
	if id, ok := idx.Lookup(key); ok {
		p.Key, p.Resolved = id, true
	} else {
		p.Key = key.Label()
		if _, clash := idx.Identity(p.Key); clash {
			p.Key = UnresolvedPrefix + p.Key
		}
	}
	return p, true, nil
}

// count coerces a numeric cell to an int, truncating toward zero so exports
// holding "1200.0" are accepted.
func count(cell string) (int, error) {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return int(math.Trunc(f)), nil
}

func summarize(session string, tally *dedupe.Tally) model.SessionSummary {
	entries := tally.Entries()
	high := tally.Max()
	rows := make([]model.SummaryRow, len(entries))
	for i, e := range entries {
		rows[i] = model.SummaryRow{
			Key:     e.Key,
			Score:   e.Score,
			Correct: e.Correct,
			Ratio:   Ratio(e.Score, high),
		}
	}
	return model.SessionSummary{Session: session, Rows: rows}
}

// Ratio returns score/high rounded to two decimals and bounded to [0, 1].
// A non-positive high score yields 0.
func Ratio(score, high int) float64 {
	if high <= 0 {
		return 0
	}
	r := math.Round(float64(score)/float64(high)*ratioPrecision) / ratioPrecision
	return math.Max(0, math.Min(1, r))
}
