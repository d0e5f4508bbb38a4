package srs

import (
	"math"
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// IntervalScheduler implements the continuous scheduling model used for
// personal items: an SM-2 variant driven by an ease factor and a growing
// interval in days.
type IntervalScheduler struct {
	params *Params
}

// Ensure IntervalScheduler implements the Scheduler interface
var _ Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler creates an interval scheduler with the given params.
func NewIntervalScheduler(params *Params) *IntervalScheduler {
	if params == nil {
		params = NewDefaultParams()
	}
	return &IntervalScheduler{params: params}
}

// nextEaseFactor applies the rating's adjustment and clamps at the floor.
// There is deliberately no upper clamp. An unrecognized rating carries the
// failing adjustment, matching the failing branch it is scheduled on.
func nextEaseFactor(currentEF float64, rating domain.Rating, params *Params) float64 {
	if !rating.IsValid() {
		rating = domain.RatingAgain
	}
	newEF := currentEF + params.EaseFactorAdjustment[rating]
	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	return newEF
}

// nextIntervalDays computes the interval that follows a successful
// repetition. The first two repetitions use fixed short intervals; from the
// third on, the previous interval is multiplied by the ease factor and
// rounded to whole days.
func nextIntervalDays(previousDays, repetitions int, easeFactor float64, params *Params) int {
	switch repetitions {
	case 1:
		return params.FirstIntervalDays
	case 2:
		return params.SecondIntervalDays
	default:
		return int(math.Round(float64(previousDays) * easeFactor))
	}
}

// Next implements Scheduler.Next for the interval model.
//
// A failing rating resets repetitions and the interval and brings the item
// back within minutes; passing ratings grow the interval per SM-2. An
// unrecognized rating is treated as a failure, never as a pass. The input
// state is not modified.
func (s *IntervalScheduler) Next(
	state *domain.ReviewState,
	rating domain.Rating,
	now time.Time,
) *domain.ReviewState {
	next := state.Clone()
	next.Algorithm = domain.AlgorithmInterval
	next.LastReviewedAt = now
	next.UpdatedAt = now
	next.EaseFactor = nextEaseFactor(state.EaseFactor, rating, s.params)

	if !rating.IsValid() || !rating.Passing() {
		// Failed recall: restart the repetition ladder and retry shortly.
		next.Repetitions = 0
		next.IntervalDays = 0
		next.NextReviewAt = now.Add(time.Duration(s.params.AgainReviewMinutes) * time.Minute)
		return next
	}

	next.Repetitions = state.Repetitions + 1
	next.IntervalDays = nextIntervalDays(state.IntervalDays, next.Repetitions, next.EaseFactor, s.params)
	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	return next
}

// CompleteIntro implements Scheduler.CompleteIntro. Interval items have no
// intro step, so this only refreshes the timestamps and grants no mastery.
func (s *IntervalScheduler) CompleteIntro(
	state *domain.ReviewState,
	now time.Time,
) *domain.ReviewState {
	next := state.Clone()
	next.UpdatedAt = now
	return next
}

// Rank implements Scheduler.Rank by bucketing interval length onto the
// six-level mastery scale.
func (s *IntervalScheduler) Rank(state *domain.ReviewState) int {
	switch {
	case state.Repetitions == 0:
		return int(domain.Stage1)
	case state.IntervalDays < 3:
		return int(domain.Stage2)
	case state.IntervalDays < 7:
		return int(domain.Stage3)
	case state.IntervalDays < 21:
		return int(domain.Stage4)
	default:
		return int(domain.Stage5)
	}
}
