package dedupe

// Option applies a configuration option to the Tally.
type Option func(*Tally)

// WithCapacityHint pre-sizes the tally for n distinct keys.
func WithCapacityHint(n int) Option {
	return func(t *Tally) {
		if n > 0 {
			t.capacity = n
		}
	}
}
