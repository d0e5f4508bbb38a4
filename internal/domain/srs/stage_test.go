package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

func newStageState(t *testing.T, stage domain.Stage) *domain.ReviewState {
	t.Helper()
	state, err := domain.NewStageReviewState(uuid.New(), domain.ItemRef("curriculum:"+uuid.New().String()))
	if err != nil {
		t.Fatalf("Failed to create review state: %v", err)
	}
	state.Stage = stage
	return state
}

func TestNextStage(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		current  domain.Stage
		result   domain.Result
		expected domain.Stage
	}{
		{
			name:     "Correct answer climbs one stage",
			current:  domain.Stage1,
			result:   domain.ResultCorrect,
			expected: domain.Stage2,
		},
		{
			name:     "Correct answer at the top stage is idempotent",
			current:  domain.Stage5,
			result:   domain.ResultCorrect,
			expected: domain.Stage5,
		},
		{
			name:     "Incorrect answer drops exactly one stage",
			current:  domain.Stage3,
			result:   domain.ResultIncorrect,
			expected: domain.Stage2,
		},
		{
			name:     "Incorrect answer at STAGE_2 drops to STAGE_1",
			current:  domain.Stage2,
			result:   domain.ResultIncorrect,
			expected: domain.Stage1,
		},
		{
			name:     "Regression floors at STAGE_1, never NEW",
			current:  domain.Stage1,
			result:   domain.ResultIncorrect,
			expected: domain.Stage1,
		},
		{
			name:     "Unrecognized result regresses",
			current:  domain.Stage4,
			result:   domain.Result("brilliant"),
			expected: domain.Stage3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextStage(tc.current, tc.result); got != tc.expected {
				t.Errorf("Expected stage %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestStageSchedulerNext(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	scheduler := NewStageScheduler(params)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("four-point rating collapses to pass or fail", func(t *testing.T) {
		testCases := []struct {
			rating   domain.Rating
			expected domain.Stage
		}{
			{domain.RatingAgain, domain.Stage1},
			{domain.RatingHard, domain.Stage3},
			{domain.RatingGood, domain.Stage3},
			{domain.RatingEasy, domain.Stage3},
		}

		for _, tc := range testCases {
			state := newStageState(t, domain.Stage2)
			next := scheduler.Next(state, tc.rating, now)

			if next.Stage != tc.expected {
				t.Errorf("Rating %q: expected stage %v, got %v", tc.rating, tc.expected, next.Stage)
			}
		}
	})

	t.Run("next review time comes from the spacing table", func(t *testing.T) {
		state := newStageState(t, domain.Stage1)

		next := scheduler.Next(state, domain.RatingGood, now)

		expected := now.Add(params.StageSpacing[domain.Stage2])
		if !next.NextReviewAt.Equal(expected) {
			t.Errorf("Expected next review at %v, got %v", expected, next.NextReviewAt)
		}
	})

	t.Run("unrecognized rating counts as incorrect", func(t *testing.T) {
		state := newStageState(t, domain.Stage3)

		next := scheduler.Next(state, domain.Rating("perfect"), now)

		if next.Stage != domain.Stage2 {
			t.Errorf("Expected stage %v, got %v", domain.Stage2, next.Stage)
		}
		if next.LastResult != domain.ResultIncorrect {
			t.Errorf("Expected last result incorrect, got %v", next.LastResult)
		}
	})

	t.Run("input state is not modified", func(t *testing.T) {
		state := newStageState(t, domain.Stage3)

		_ = scheduler.Next(state, domain.RatingGood, now)

		if state.Stage != domain.Stage3 {
			t.Error("Expected input state to be unchanged")
		}
	})
}

func TestStageSchedulerCompleteIntro(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	scheduler := NewStageScheduler(params)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("NEW moves to STAGE_1", func(t *testing.T) {
		state := newStageState(t, domain.StageNew)

		next := scheduler.CompleteIntro(state, now)

		if next.Stage != domain.Stage1 {
			t.Errorf("Expected stage %v, got %v", domain.Stage1, next.Stage)
		}
		if next.LastResult != domain.ResultCorrect {
			t.Errorf("Expected last result correct, got %v", next.LastResult)
		}
		expected := now.Add(params.StageSpacing[domain.Stage1])
		if !next.NextReviewAt.Equal(expected) {
			t.Errorf("Expected next review at %v, got %v", expected, next.NextReviewAt)
		}
	})

	t.Run("items past the intro are left where they are", func(t *testing.T) {
		state := newStageState(t, domain.Stage3)
		before := state.NextReviewAt

		next := scheduler.CompleteIntro(state, now)

		if next.Stage != domain.Stage3 {
			t.Errorf("Expected stage %v, got %v", domain.Stage3, next.Stage)
		}
		if !next.NextReviewAt.Equal(before) {
			t.Error("Expected next review time to be unchanged")
		}
	})
}

func TestRegistrySelection(t *testing.T) {
	t.Parallel() // Enable parallel execution
	registry := NewRegistry(nil)

	if _, ok := registry.ForSource(domain.SourceCurriculum).(*StageScheduler); !ok {
		t.Error("Expected curriculum items to use the stage scheduler")
	}
	if _, ok := registry.ForSource(domain.SourcePersonal).(*IntervalScheduler); !ok {
		t.Error("Expected personal items to use the interval scheduler")
	}

	stageState := newStageState(t, domain.Stage1)
	if _, ok := registry.ForState(stageState).(*StageScheduler); !ok {
		t.Error("Expected stage-tagged state to use the stage scheduler")
	}
}

func TestRegistryStageEquivalent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	registry := NewRegistry(nil)

	if got := registry.StageEquivalent(nil, domain.SourceCurriculum); got != domain.StageNew {
		t.Errorf("Expected absent curriculum state to rank NEW, got %v", got)
	}
	if got := registry.StageEquivalent(nil, domain.SourcePersonal); got != domain.Stage1 {
		t.Errorf("Expected absent personal state to rank STAGE_1, got %v", got)
	}

	stageState := newStageState(t, domain.Stage4)
	if got := registry.StageEquivalent(stageState, domain.SourceCurriculum); got != domain.Stage4 {
		t.Errorf("Expected stage state to rank as its stage, got %v", got)
	}
}
