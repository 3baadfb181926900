// Package dedupe folds repeated appearances of the same key into one entry.
//
// A participant who disconnects and rejoins a session shows up as several rows
// with partial scores. The Tally sums those rows instead of keeping one.
package dedupe

// Entry is the accumulated total for one key.
type Entry struct {
	Key     string
	Score   int
	Correct int
	Rows    int // number of rows folded into this entry
}

// Tally accumulates scores per key in first-seen order.
// It is not safe for concurrent use; each session owns its own Tally.
type Tally struct {
	index    map[string]int // key -> position in entries
	entries  []Entry
	merges   int
	capacity int
}

// NewTally creates an empty tally with configuration options.
func NewTally(opts ...Option) *Tally {
	t := &Tally{}

	// Apply all options
	for _, opt := range opts {
		opt(t)
	}

	t.index = make(map[string]int, t.capacity)
	t.entries = make([]Entry, 0, t.capacity)
	return t
}

// Add folds one row into the tally. It returns true when key was already
// present, meaning the row was merged into an earlier appearance.
func (t *Tally) Add(key string, score, correct int) bool {
	if pos, ok := t.index[key]; ok {
		e := &t.entries[pos]
		e.Score += score
		e.Correct += correct
		e.Rows++
		t.merges++
		return true
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Score: score, Correct: correct, Rows: 1})
	return false
}

// Entries returns a copy of the accumulated entries in first-seen order.
func (t *Tally) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Max returns the highest summed score, or 0 for an empty tally.
func (t *Tally) Max() int {
	if len(t.entries) == 0 {
		return 0
	}
	best := t.entries[0].Score
	for _, e := range t.entries[1:] {
		if e.Score > best {
			best = e.Score
		}
	}
	return best
}

// Merges returns how many rows were folded into an existing key.
func (t *Tally) Merges() int { return t.merges }

// Size returns the number of distinct keys.
func (t *Tally) Size() int { return len(t.entries) }
