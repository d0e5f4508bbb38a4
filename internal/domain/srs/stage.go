package srs

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// StageScheduler implements the discrete scheduling model used for
// curriculum items: six ordinal mastery levels with a fixed spacing table.
type StageScheduler struct {
	params *Params
}

// Ensure StageScheduler implements the Scheduler interface
var _ Scheduler = (*StageScheduler)(nil)

// NewStageScheduler creates a stage scheduler with the given params.
func NewStageScheduler(params *Params) *StageScheduler {
	if params == nil {
		params = NewDefaultParams()
	}
	return &StageScheduler{params: params}
}

// nextStage applies the regression policy: a correct answer climbs exactly
// one stage and is idempotent at STAGE_5; an incorrect answer drops exactly
// one stage, floored at STAGE_1. NEW is only reachable before the intro, so
// regression never returns there.
func nextStage(current domain.Stage, result domain.Result) domain.Stage {
	if result == domain.ResultCorrect {
		if current >= domain.Stage5 {
			return domain.Stage5
		}
		return current + 1
	}

	// Incorrect, or anything unrecognized, regresses.
	if current <= domain.Stage1 {
		return domain.Stage1
	}
	return current - 1
}

// Next implements Scheduler.Next for the stage model.
//
// The 4-point rating collapses onto the stage model's 2-point scale: again
// counts as incorrect, everything else as correct. An unrecognized rating is
// treated as incorrect, never as a pass. The next review time comes from the
// fixed spacing table and is independent of any ease factor. The input state
// is not modified.
func (s *StageScheduler) Next(
	state *domain.ReviewState,
	rating domain.Rating,
	now time.Time,
) *domain.ReviewState {
	result := domain.ResultIncorrect
	if rating.IsValid() && rating.Passing() {
		result = domain.ResultCorrect
	}

	next := state.Clone()
	next.Algorithm = domain.AlgorithmStage
	next.Stage = nextStage(state.Stage, result)
	next.LastResult = result
	next.LastReviewedAt = now
	next.UpdatedAt = now
	next.NextReviewAt = now.Add(s.params.StageSpacing[next.Stage])
	return next
}

// CompleteIntro implements Scheduler.CompleteIntro. Finishing the ungraded
// intro exercise always moves NEW to STAGE_1 with a correct-equivalent
// result; items past the intro are left where they are.
func (s *StageScheduler) CompleteIntro(
	state *domain.ReviewState,
	now time.Time,
) *domain.ReviewState {
	next := state.Clone()
	next.UpdatedAt = now

	if state.Stage != domain.StageNew {
		return next
	}

	next.Stage = domain.Stage1
	next.LastResult = domain.ResultCorrect
	next.LastReviewedAt = now
	next.NextReviewAt = now.Add(s.params.StageSpacing[domain.Stage1])
	return next
}

// Rank implements Scheduler.Rank; the stage ordinal is the mastery rank.
func (s *StageScheduler) Rank(state *domain.ReviewState) int {
	return int(state.Stage)
}
