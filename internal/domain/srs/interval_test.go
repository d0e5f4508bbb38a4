package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

func newIntervalState(t *testing.T) *domain.ReviewState {
	t.Helper()
	state, err := domain.NewIntervalReviewState(uuid.New(), domain.ItemRef("personal:"+uuid.New().String()))
	if err != nil {
		t.Fatalf("Failed to create review state: %v", err)
	}
	return state
}

func TestNextEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		rating   domain.Rating
		expected float64
	}{
		{
			name:     "Again rating should decrease ease factor",
			current:  2.5,
			rating:   domain.RatingAgain,
			expected: 2.3, // 2.5 - 0.2 = 2.3
		},
		{
			name:     "Hard rating should slightly decrease ease factor",
			current:  2.5,
			rating:   domain.RatingHard,
			expected: 2.35, // 2.5 - 0.15 = 2.35
		},
		{
			name:     "Good rating should not change ease factor",
			current:  2.5,
			rating:   domain.RatingGood,
			expected: 2.5,
		},
		{
			name:     "Easy rating should increase ease factor",
			current:  2.5,
			rating:   domain.RatingEasy,
			expected: 2.65, // 2.5 + 0.15 = 2.65
		},
		{
			name:     "Ease factor never drops below the floor",
			current:  1.35,
			rating:   domain.RatingAgain,
			expected: 1.3,
		},
		{
			name:     "Ease factor already at the floor stays there",
			current:  1.3,
			rating:   domain.RatingAgain,
			expected: 1.3,
		},
		{
			name:     "No upper clamp on ease factor",
			current:  4.0,
			rating:   domain.RatingEasy,
			expected: 4.15,
		},
		{
			name:     "Unrecognized rating applies the failing penalty",
			current:  2.5,
			rating:   domain.Rating("perfect"),
			expected: 2.3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextEaseFactor(tc.current, tc.rating, params)

			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestNextIntervalDays(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name         string
		previousDays int
		repetitions  int
		easeFactor   float64
		expected     int
	}{
		{
			name:         "First repetition uses the fixed first interval",
			previousDays: 0,
			repetitions:  1,
			easeFactor:   2.5,
			expected:     1,
		},
		{
			name:         "Second repetition uses the fixed second interval",
			previousDays: 1,
			repetitions:  2,
			easeFactor:   2.5,
			expected:     6,
		},
		{
			name:         "Third repetition multiplies by ease factor",
			previousDays: 6,
			repetitions:  3,
			easeFactor:   2.5,
			expected:     15, // 6 * 2.5 = 15
		},
		{
			name:         "Result is rounded to whole days",
			previousDays: 15,
			repetitions:  4,
			easeFactor:   2.35,
			expected:     35, // 15 * 2.35 = 35.25 → 35
		},
		{
			name:         "Rounding goes up past the midpoint",
			previousDays: 7,
			repetitions:  3,
			easeFactor:   2.5,
			expected:     18, // 7 * 2.5 = 17.5 → 18
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextIntervalDays(tc.previousDays, tc.repetitions, tc.easeFactor, params)

			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestIntervalSchedulerNext(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scheduler := NewIntervalScheduler(nil)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("passing rating grows the repetition ladder", func(t *testing.T) {
		state := newIntervalState(t)

		next := scheduler.Next(state, domain.RatingGood, now)

		if next.Repetitions != 1 {
			t.Errorf("Expected repetitions 1, got %d", next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("Expected interval 1, got %d", next.IntervalDays)
		}
		expected := now.AddDate(0, 0, 1)
		if !next.NextReviewAt.Equal(expected) {
			t.Errorf("Expected next review at %v, got %v", expected, next.NextReviewAt)
		}
	})

	t.Run("failing rating resets and retries within minutes", func(t *testing.T) {
		state := newIntervalState(t)
		state.Repetitions = 4
		state.IntervalDays = 35
		state.EaseFactor = 2.5

		next := scheduler.Next(state, domain.RatingAgain, now)

		if next.Repetitions != 0 {
			t.Errorf("Expected repetitions 0, got %d", next.Repetitions)
		}
		if next.IntervalDays != 0 {
			t.Errorf("Expected interval 0, got %d", next.IntervalDays)
		}
		expected := now.Add(10 * time.Minute)
		if !next.NextReviewAt.Equal(expected) {
			t.Errorf("Expected next review at %v, got %v", expected, next.NextReviewAt)
		}
		if next.EaseFactor != 2.3 {
			t.Errorf("Expected ease factor 2.3, got %f", next.EaseFactor)
		}
	})

	t.Run("unrecognized rating follows the failing branch", func(t *testing.T) {
		state := newIntervalState(t)
		state.Repetitions = 2
		state.IntervalDays = 6

		next := scheduler.Next(state, domain.Rating("perfect"), now)

		if next.Repetitions != 0 {
			t.Errorf("Expected repetitions 0, got %d", next.Repetitions)
		}
		if next.EaseFactor != 2.3 {
			t.Errorf("Expected the failing ease penalty to apply, got %f", next.EaseFactor)
		}
	})

	t.Run("input state is not modified", func(t *testing.T) {
		state := newIntervalState(t)
		state.Repetitions = 2
		state.IntervalDays = 6

		_ = scheduler.Next(state, domain.RatingGood, now)

		if state.Repetitions != 2 || state.IntervalDays != 6 {
			t.Error("Expected input state to be unchanged")
		}
	})

	t.Run("three good reviews reach the multiplied interval", func(t *testing.T) {
		state := newIntervalState(t)

		state = scheduler.Next(state, domain.RatingGood, now)
		state = scheduler.Next(state, domain.RatingGood, state.NextReviewAt)
		state = scheduler.Next(state, domain.RatingGood, state.NextReviewAt)

		if state.Repetitions != 3 {
			t.Errorf("Expected repetitions 3, got %d", state.Repetitions)
		}
		if state.IntervalDays != 15 { // 6 * 2.5 = 15
			t.Errorf("Expected interval 15, got %d", state.IntervalDays)
		}
	})
}

func TestIntervalSchedulerCompleteIntro(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scheduler := NewIntervalScheduler(nil)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	state := newIntervalState(t)
	before := state.Clone()

	next := scheduler.CompleteIntro(state, now)

	if next.Repetitions != before.Repetitions {
		t.Error("Expected intro completion to grant no repetitions")
	}
	if next.IntervalDays != before.IntervalDays {
		t.Error("Expected intro completion to leave the interval unchanged")
	}
	if !next.UpdatedAt.Equal(now) {
		t.Errorf("Expected UpdatedAt %v, got %v", now, next.UpdatedAt)
	}
}

func TestIntervalSchedulerRank(t *testing.T) {
	t.Parallel() // Enable parallel execution
	scheduler := NewIntervalScheduler(nil)

	testCases := []struct {
		name         string
		repetitions  int
		intervalDays int
		expected     int
	}{
		{"never passed a review", 0, 0, int(domain.Stage1)},
		{"short interval", 1, 1, int(domain.Stage2)},
		{"under a week", 2, 6, int(domain.Stage3)},
		{"under three weeks", 3, 15, int(domain.Stage4)},
		{"long interval", 4, 35, int(domain.Stage5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := newIntervalState(t)
			state.Repetitions = tc.repetitions
			state.IntervalDays = tc.intervalDays

			if got := scheduler.Rank(state); got != tc.expected {
				t.Errorf("Expected rank %d, got %d", tc.expected, got)
			}
		})
	}
}
