package grading

// Option applies a configuration option to the Grader.
type Option func(*Grader)

// WithPolicy replaces the whole policy.
func WithPolicy(p Policy) Option {
	return func(g *Grader) {
		g.policy = p
	}
}

// WithCorrectThreshold sets the correct-answer pass threshold.
func WithCorrectThreshold(n int) Option {
	return func(g *Grader) {
		g.policy.CorrectThreshold = n
	}
}

// WithRatioThreshold sets the score-ratio pass threshold.
func WithRatioThreshold(r float64) Option {
	return func(g *Grader) {
		g.policy.RatioThreshold = r
	}
}

// WithTopN sets how many session grades are averaged.
func WithTopN(n int) Option {
	return func(g *Grader) {
		g.policy.TopN = n
	}
}

// WithMaxPoints sets the points awarded for a perfect average.
func WithMaxPoints(n int) Option {
	return func(g *Grader) {
		g.policy.MaxPoints = n
	}
}
