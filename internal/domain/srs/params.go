package srs

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithms.
type Params struct {
	// Interval model

	// MinEaseFactor is the floor for the ease factor. There is no ceiling;
	// genuinely easy items are allowed to grow their intervals quickly.
	MinEaseFactor float64

	// EaseFactorAdjustment is applied to the ease factor per rating.
	EaseFactorAdjustment map[domain.Rating]float64

	// FirstIntervalDays and SecondIntervalDays are the fixed intervals used
	// for the first two successful repetitions. Later repetitions multiply
	// the previous interval by the ease factor.
	FirstIntervalDays  int
	SecondIntervalDays int

	// AgainReviewMinutes is how soon a failed item comes back, in minutes.
	AgainReviewMinutes int

	// Stage model

	// StageSpacing maps each stage to the wait before its next review.
	// Spacing strictly increases with stage.
	StageSpacing map[domain.Stage]time.Duration
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: domain.MinEaseFactor,

		EaseFactorAdjustment: map[domain.Rating]float64{
			domain.RatingAgain: -0.20,
			domain.RatingHard:  -0.15,
			domain.RatingGood:  0.0,
			domain.RatingEasy:  0.15,
		},

		FirstIntervalDays:  1,
		SecondIntervalDays: 6,
		AgainReviewMinutes: 10,

		StageSpacing: map[domain.Stage]time.Duration{
			domain.Stage1: 4 * time.Hour,
			domain.Stage2: 24 * time.Hour,
			domain.Stage3: 72 * time.Hour,
			domain.Stage4: 7 * 24 * time.Hour,
			domain.Stage5: 14 * 24 * time.Hour,
		},
	}
}
