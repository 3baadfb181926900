// Package model contains domain models passed between layers.
package model

import (
	"path/filepath"
	"strings"
)

// Column suffixes appended to a session name to build per-session headers.
const (
	ScoreSuffix   = " Score"
	CorrectSuffix = " Correct"
	RatioSuffix   = " Ratio"
)

// Identity is one enrolled individual from the roster.
type Identity struct {
	ID            string   // opaque roster key, e.g. an institutional number
	DisplayTokens []string // name parts as written in the roster, order preserved
}

// First returns the first display token or "" when absent.
func (i Identity) First() string { return i.token(0) }

// Last returns the second display token or "" when absent.
func (i Identity) Last() string { return i.token(1) }

func (i Identity) token(n int) string {
	if n < len(i.DisplayTokens) {
		return i.DisplayTokens[n]
	}
	return ""
}

// Table is a header plus rows of raw text cells, as read from a tabular source.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the header named name, ignoring surrounding
// whitespace. It returns -1 when the column is absent.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// SessionRow is one raw participation record. Cells are kept as text so the
// resolver owns coercion and its error reporting.
type SessionRow struct {
	Player  string
	Score   string
	Correct string
}

// Session is the raw export of a single quiz event.
type Session struct {
	Name string // derived from the source identifier, extension stripped
	Rows []SessionRow
}

// SummaryRow is one resolved key after reconnect deduplication.
type SummaryRow struct {
	Key     string // roster id, or the synthetic label of an unresolved name
	Score   int
	Correct int
	Ratio   float64
}

// SessionSummary holds the deduplicated rows of one session.
type SessionSummary struct {
	Session string
	Rows    []SummaryRow
}

// ScoreColumn returns the per-session score header.
func (s SessionSummary) ScoreColumn() string { return s.Session + ScoreSuffix }

// CorrectColumn returns the per-session correct-answer header.
func (s SessionSummary) CorrectColumn() string { return s.Session + CorrectSuffix }

// RatioColumn returns the per-session ratio header.
func (s SessionSummary) RatioColumn() string { return s.Session + RatioSuffix }

// SessionName derives a session name from its source path: the base name with
// the extension stripped.
func SessionName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Session export headers.
const (
	PlayerHeader  = "Player"
	ScoreHeader   = "Total Score (points)"
	CorrectHeader = "Correct Answers"
)
