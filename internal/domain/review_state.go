package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Algorithm discriminates the two coexisting scheduling models.
// Curriculum items use the discrete stage model; personal items use the
// continuous interval model.
type Algorithm string

// Possible algorithm values
const (
	AlgorithmInterval Algorithm = "interval"
	AlgorithmStage    Algorithm = "stage"
)

// Rating is the 4-point grading outcome used by the interval model.
type Rating string

// Possible rating values
const (
	RatingAgain Rating = "again" // Failed recall
	RatingHard  Rating = "hard"  // Recalled with significant effort
	RatingGood  Rating = "good"  // Recalled correctly
	RatingEasy  Rating = "easy"  // Recalled effortlessly
)

// IsValid reports whether the rating is one of the known values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// Passing reports whether the rating counts as a successful recall.
func (r Rating) Passing() bool {
	return r == RatingHard || r == RatingGood || r == RatingEasy
}

// Result is the 2-point grading outcome used by the stage model.
type Result string

// Possible result values
const (
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// IsValid reports whether the result is one of the known values.
func (r Result) IsValid() bool {
	return r == ResultCorrect || r == ResultIncorrect
}

// Stage is a discrete mastery level in the six-level model.
// NEW items have never been introduced; STAGE_5 is terminal.
type Stage int

// Stage values, ordered by mastery
const (
	StageNew Stage = iota
	Stage1
	Stage2
	Stage3
	Stage4
	Stage5
)

// stageNames maps stages to their wire representation.
var stageNames = map[Stage]string{
	StageNew: "new",
	Stage1:   "stage_1",
	Stage2:   "stage_2",
	Stage3:   "stage_3",
	Stage4:   "stage_4",
	Stage5:   "stage_5",
}

// String returns the wire representation of the stage.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the stage is within the NEW..STAGE_5 range.
func (s Stage) IsValid() bool {
	return s >= StageNew && s <= Stage5
}

// ParseStage converts a wire representation back into a Stage.
func ParseStage(name string) (Stage, error) {
	for s, n := range stageNames {
		if n == name {
			return s, nil
		}
	}
	return StageNew, ErrInvalidStage
}

// Common validation errors for ReviewState
var (
	ErrEmptyStateUserID   = errors.New("review state user ID cannot be empty")
	ErrEmptyStateItemRef  = errors.New("review state item ref cannot be empty")
	ErrInvalidAlgorithm   = errors.New("invalid scheduling algorithm")
	ErrInvalidIntervalDay = errors.New("interval days must be greater than or equal to 0")
	ErrInvalidEaseFactor  = errors.New("ease factor must be at least 1.3")
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
	ErrInvalidStage       = errors.New("stage must be between NEW and STAGE_5")
)

// MinEaseFactor is the floor below which an item's ease factor never drops.
const MinEaseFactor = 1.3

// DefaultEaseFactor is the ease factor assigned to freshly created states.
const DefaultEaseFactor = 2.5

// ReviewState tracks a user's scheduling state for a single item. The
// Algorithm field discriminates which group of fields is meaningful:
// interval states use EaseFactor/IntervalDays/Repetitions, stage states use
// Stage/LastResult. It is created lazily on first grading (or on intro
// completion for stage items) and only removed when the item itself is.
type ReviewState struct {
	UserID         uuid.UUID `json:"user_id"`
	ItemRef        ItemRef   `json:"item_ref"`
	Algorithm      Algorithm `json:"algorithm"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	Stage          Stage     `json:"stage"`
	LastResult     Result    `json:"last_result,omitempty"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewIntervalReviewState creates scheduling state for a personal item with
// defaults that make the item due immediately.
func NewIntervalReviewState(userID uuid.UUID, ref ItemRef) (*ReviewState, error) {
	now := time.Now().UTC()
	state := &ReviewState{
		UserID:       userID,
		ItemRef:      ref,
		Algorithm:    AlgorithmInterval,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// NewStageReviewState creates scheduling state for a curriculum item,
// starting at NEW and due immediately.
func NewStageReviewState(userID uuid.UUID, ref ItemRef) (*ReviewState, error) {
	now := time.Now().UTC()
	state := &ReviewState{
		UserID:       userID,
		ItemRef:      ref,
		Algorithm:    AlgorithmStage,
		Stage:        StageNew,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// Validate checks the ReviewState invariants for its algorithm variant.
func (s *ReviewState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStateUserID
	}
	if s.ItemRef == "" {
		return ErrEmptyStateItemRef
	}

	switch s.Algorithm {
	case AlgorithmInterval:
		if s.IntervalDays < 0 {
			return ErrInvalidIntervalDay
		}
		if s.EaseFactor < MinEaseFactor {
			return ErrInvalidEaseFactor
		}
		if s.Repetitions < 0 {
			return ErrInvalidRepetitions
		}
	case AlgorithmStage:
		if !s.Stage.IsValid() {
			return ErrInvalidStage
		}
	default:
		return ErrInvalidAlgorithm
	}

	return nil
}

// Clone returns a copy of the state. Scheduling transitions follow the
// immutable-update pattern and never modify the input state.
func (s *ReviewState) Clone() *ReviewState {
	copied := *s
	return &copied
}
