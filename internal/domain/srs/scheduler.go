package srs

import (
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// Scheduler is the strategy shared by both scheduling models. All methods
// are pure: no I/O, no hidden state, and identical inputs always yield
// identical outputs, so callers may use them for optimistic UI prediction
// as well as for the persisted update. They never return errors; an
// unrecognized grading input follows the failing branch.
type Scheduler interface {
	// Next computes the state that follows grading the item with rating
	// at time now. The input state is never modified.
	Next(state *domain.ReviewState, rating domain.Rating, now time.Time) *domain.ReviewState

	// CompleteIntro records the ungraded intro step for the item.
	CompleteIntro(state *domain.ReviewState, now time.Time) *domain.ReviewState

	// Rank maps the state onto the six-level mastery scale. Lower ranks are
	// scheduled ahead of higher ones when building a due set.
	Rank(state *domain.ReviewState) int
}

// Registry selects the scheduling strategy for an item source: curriculum
// items use the stage model, personal items the interval model. A single
// registry is shared by all callers; both schedulers are stateless.
type Registry struct {
	interval *IntervalScheduler
	stage    *StageScheduler
}

// NewRegistry creates a Registry with both schedulers built from params.
func NewRegistry(params *Params) *Registry {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Registry{
		interval: NewIntervalScheduler(params),
		stage:    NewStageScheduler(params),
	}
}

// ForSource returns the scheduler for the given item source.
func (r *Registry) ForSource(src domain.ItemSource) Scheduler {
	if src == domain.SourceCurriculum {
		return r.stage
	}
	return r.interval
}

// ForState returns the scheduler matching the state's algorithm tag.
func (r *Registry) ForState(state *domain.ReviewState) Scheduler {
	if state.Algorithm == domain.AlgorithmStage {
		return r.stage
	}
	return r.interval
}

// NewState creates the lazily initialized review state for an item: stage
// states for curriculum items, interval states for personal ones.
func (r *Registry) NewState(userID uuid.UUID, item domain.Item) (*domain.ReviewState, error) {
	if item.Source() == domain.SourceCurriculum {
		return domain.NewStageReviewState(userID, item.Ref())
	}
	return domain.NewIntervalReviewState(userID, item.Ref())
}

// StageEquivalent maps any review state onto the six-level scale used by
// exercise selection. Absent states (never-reviewed items) are NEW for
// curriculum items and STAGE_1 for personal ones, which have no intro step.
func (r *Registry) StageEquivalent(state *domain.ReviewState, src domain.ItemSource) domain.Stage {
	if state == nil {
		if src == domain.SourceCurriculum {
			return domain.StageNew
		}
		return domain.Stage1
	}
	return domain.Stage(r.ForState(state).Rank(state))
}
