// Package sampledata generates a synthetic roster and noisy session exports
// for trying the merge end to end.
package sampledata

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/okian/quizmerge/internal/domain/namekey"
)

const (
	idBase      = 300000000
	idSpan      = 99999999
	pointsPerQ  = 1000
	strangerTag = "guest"
)

var (
	firstNames = []string{
		"David", "Noa", "Yael", "Omer", "Maya", "Itai", "Tamar", "Eitan", "Shira", "Amit",
		"Lior", "Roni", "Adi", "Gal", "Neta", "Ido", "Michal", "Yonatan", "Hila", "Nadav",
	}
	lastNames = []string{
		"Peled", "Levi", "Cohen", "Mizrahi", "Bar", "Friedman", "Katz", "Shapiro", "Azulay", "Golan",
		"Ben-David", "Dahan", "Avraham", "Segal", "Ohana", "Biton", "Rosen", "Weiss", "Amar", "Halevi",
	}
)

// Student is one generated roster entry.
type Student struct {
	ID    string
	First string
	Last  string
}

// Name is the display name written to the roster.
func (s Student) Name() string { return s.First + " " + s.Last }

// Row is one player line in a session export.
type Row struct {
	Player  string
	Score   int
	Correct int
}

// Session is one generated export.
type Session struct {
	Name      string
	Questions int
	Rows      []Row
}

// Dataset is everything the generator produces.
type Dataset struct {
	Students []Student
	Sessions []Session
	Stats    Stats
}

// Generate builds a dataset from cfg. The same seed gives the same dataset.
func Generate(cfg Config) (Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return Dataset{}, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	ds := Dataset{Students: students(rng, cfg.Students)}
	ds.Stats.Students = len(ds.Students)

	for n := 1; n <= cfg.Sessions; n++ {
		s := Session{Name: fmt.Sprintf("Session %02d", n), Questions: cfg.Questions}
		for _, st := range ds.Students {
			if rng.Float64() < cfg.AbsenceRate {
				continue
			}
			correct := rng.IntN(cfg.Questions + 1)
			score := correct*pointsPerQ - rng.IntN(pointsPerQ/2)*min(correct, 1)
			name := noisy(rng, st)

			if correct > 1 && rng.Float64() < cfg.ReconnectRate {
				split := rng.IntN(correct) + 1
				s.Rows = append(s.Rows,
					Row{Player: name, Score: score * split / correct, Correct: split},
					Row{Player: noisy(rng, st), Score: score - score*split/correct, Correct: correct - split},
				)
				ds.Stats.Reconnects++
				continue
			}
			s.Rows = append(s.Rows, Row{Player: name, Score: score, Correct: correct})
		}

		strangers := int(float64(cfg.Students) * cfg.StrangerRate)
		for i := 0; i < strangers; i++ {
			correct := rng.IntN(cfg.Questions + 1)
			s.Rows = append(s.Rows, Row{
				Player:  fmt.Sprintf("%s%d", strangerTag, rng.IntN(1000)),
				Score:   correct * pointsPerQ,
				Correct: correct,
			})
		}
		ds.Stats.Strangers += strangers

		rng.Shuffle(len(s.Rows), func(i, j int) { s.Rows[i], s.Rows[j] = s.Rows[j], s.Rows[i] })
		ds.Stats.Rows += len(s.Rows)
		ds.Sessions = append(ds.Sessions, s)
	}
	ds.Stats.Sessions = len(ds.Sessions)
	return ds, nil
}

// students draws n students with unique ids and unique name keys.
func students(rng *rand.Rand, n int) []Student {
	out := make([]Student, 0, n)
	ids := make(map[string]struct{}, n)
	names := make(map[namekey.Key]struct{}, n)
	for len(out) < n {
		st := Student{
			ID:    fmt.Sprintf("%d", idBase+rng.IntN(idSpan)),
			First: firstNames[rng.IntN(len(firstNames))],
			Last:  lastNames[rng.IntN(len(lastNames))],
		}
		if len(out) >= len(firstNames)*len(lastNames) {
			st.Last = fmt.Sprintf("%s%d", st.Last, len(out))
		}
		key := namekey.Parse(st.Name())
		if _, dup := ids[st.ID]; dup {
			continue
		}
		if _, dup := names[key]; dup {
			continue
		}
		ids[st.ID], names[key] = struct{}{}, struct{}{}
		out = append(out, st)
	}
	return out
}

// noisy renders a student's name the way people type it into a quiz lobby.
// Every variant still normalizes to the roster name.
func noisy(rng *rand.Rand, st Student) string {
	first, last := st.First, st.Last
	switch rng.IntN(7) {
	case 0:
		return first + " " + last
	case 1:
		return last + " " + first
	case 2:
		return strings.ToLower(first + "." + last)
	case 3:
		return strings.ToUpper(first) + "_" + last
	case 4:
		return "#" + first + " " + last + "."
	case 5:
		return first + " -- " + last + " " + first
	default:
		return "  " + strings.ToLower(last) + "   " + first + "\t"
	}
}
