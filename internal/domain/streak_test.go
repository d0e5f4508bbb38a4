package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStreak(t *testing.T) {
	t.Parallel() // Enable parallel execution

	userID := uuid.New()
	streak, err := NewStreak(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if streak.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, streak.UserID)
	}
	if streak.CurrentStreak != 0 || streak.LongestStreak != 0 {
		t.Error("Expected a new streak to start at zero")
	}
	if !streak.LastReviewDate.IsZero() {
		t.Errorf("Expected zero LastReviewDate, got %v", streak.LastReviewDate)
	}

	if _, err := NewStreak(uuid.Nil); err != ErrEmptyStreakUserID {
		t.Errorf("Expected ErrEmptyStreakUserID, got %v", err)
	}
}

func TestDateOf(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// A timestamp late in the day in a non-UTC zone truncates to the UTC date.
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, 3, 10, 2, 30, 0, 0, loc) // 2026-03-09 21:30 UTC

	got := DateOf(ts)
	expected := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestStreakAdvance(t *testing.T) {
	t.Parallel() // Enable parallel execution

	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 15, 0, 0, 0, time.UTC)
	}

	t.Run("first review starts the streak at 1", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())

		next := streak.Advance(day(10))

		if next.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", next.CurrentStreak)
		}
		if next.LongestStreak != 1 {
			t.Errorf("Expected longest streak 1, got %d", next.LongestStreak)
		}
		if !next.LastReviewDate.Equal(DateOf(day(10))) {
			t.Errorf("Expected last review date %v, got %v", DateOf(day(10)), next.LastReviewDate)
		}
	})

	t.Run("second review on the same day is a no-op", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())
		streak = streak.Advance(day(10))

		next := streak.Advance(day(10).Add(4 * time.Hour))

		if next.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", next.CurrentStreak)
		}
	})

	t.Run("consecutive days grow the streak", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())
		streak = streak.Advance(day(10))
		streak = streak.Advance(day(11))
		streak = streak.Advance(day(12))

		if streak.CurrentStreak != 3 {
			t.Errorf("Expected current streak 3, got %d", streak.CurrentStreak)
		}
		if streak.LongestStreak != 3 {
			t.Errorf("Expected longest streak 3, got %d", streak.LongestStreak)
		}
	})

	t.Run("a gap resets the counter to 1", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())
		streak = streak.Advance(day(10))
		streak = streak.Advance(day(11))

		next := streak.Advance(day(14))

		if next.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", next.CurrentStreak)
		}
	})

	t.Run("longest streak never decreases", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())
		streak = streak.Advance(day(10))
		streak = streak.Advance(day(11))
		streak = streak.Advance(day(12))
		streak = streak.Advance(day(20))

		if streak.LongestStreak != 3 {
			t.Errorf("Expected longest streak 3, got %d", streak.LongestStreak)
		}
		if streak.CurrentStreak != 1 {
			t.Errorf("Expected current streak 1, got %d", streak.CurrentStreak)
		}
	})

	t.Run("midnight UTC boundary separates days", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())
		justBefore := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
		justAfter := time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC)

		streak = streak.Advance(justBefore)
		next := streak.Advance(justAfter)

		if next.CurrentStreak != 2 {
			t.Errorf("Expected current streak 2, got %d", next.CurrentStreak)
		}
	})

	t.Run("receiver is not modified", func(t *testing.T) {
		streak, _ := NewStreak(uuid.New())

		_ = streak.Advance(day(10))

		if streak.CurrentStreak != 0 {
			t.Error("Expected receiver to be unchanged")
		}
	})
}

func TestStreakValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		streak   Streak
		expected error
	}{
		{
			name:     "valid",
			streak:   Streak{UserID: uuid.New(), CurrentStreak: 2, LongestStreak: 5},
			expected: nil,
		},
		{
			name:     "missing user",
			streak:   Streak{CurrentStreak: 1, LongestStreak: 1},
			expected: ErrEmptyStreakUserID,
		},
		{
			name:     "negative counter",
			streak:   Streak{UserID: uuid.New(), CurrentStreak: -1},
			expected: ErrNegativeStreak,
		},
		{
			name:     "longest below current",
			streak:   Streak{UserID: uuid.New(), CurrentStreak: 4, LongestStreak: 2},
			expected: ErrLongestBelowCurrent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.streak.Validate(); err != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}
