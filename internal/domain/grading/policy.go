package grading

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default grading policy values.
const (
	DefaultCorrectThreshold = 3
	DefaultRatioThreshold   = 0.25
	DefaultTopN             = 7
	DefaultMaxPoints        = 8
)

// Per-session grade curve: each correct answer above the floor is worth
// pointsPerAnswer, capped at maxGrade.
const (
	gradeFloor      = 2
	pointsPerAnswer = 20
	maxGrade        = 100
)

var validate = validator.New()

// Policy holds the grading thresholds. It is passed explicitly to the Grader
// rather than read from process-wide state.
type Policy struct {
	// CorrectThreshold is the correct-answer count a session needs to pass.
	CorrectThreshold int `validate:"gte=0"`
	// RatioThreshold is the fraction of the session high score needed to pass.
	RatioThreshold float64 `validate:"gte=0,lte=1"`
	// TopN is how many of the best session grades are averaged.
	TopN int `validate:"gte=1"`
	// MaxPoints is what a perfect average is worth.
	MaxPoints int `validate:"gte=0"`
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		CorrectThreshold: DefaultCorrectThreshold,
		RatioThreshold:   DefaultRatioThreshold,
		TopN:             DefaultTopN,
		MaxPoints:        DefaultMaxPoints,
	}
}

// Validate reports whether p is usable.
func (p Policy) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return nil
}
