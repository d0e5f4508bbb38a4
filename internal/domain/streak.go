package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Streak
var (
	ErrEmptyStreakUserID   = errors.New("streak user ID cannot be empty")
	ErrNegativeStreak      = errors.New("streak counters cannot be negative")
	ErrLongestBelowCurrent = errors.New("longest streak cannot be below current streak")
)

// Streak tracks how many consecutive calendar days a user has completed at
// least one graded review. LastReviewDate is a calendar date; the time
// component is always midnight UTC.
type Streak struct {
	UserID         uuid.UUID `json:"user_id"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	LastReviewDate time.Time `json:"last_review_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStreak creates an empty streak for a user.
func NewStreak(userID uuid.UUID) (*Streak, error) {
	now := time.Now().UTC()
	streak := &Streak{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := streak.Validate(); err != nil {
		return nil, err
	}
	return streak, nil
}

// Validate checks the Streak invariants.
func (s *Streak) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyStreakUserID
	}
	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return ErrNegativeStreak
	}
	if s.LongestStreak < s.CurrentStreak {
		return ErrLongestBelowCurrent
	}
	return nil
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Advance returns the streak as it stands after a graded review at now.
// Reviewing on consecutive days grows the streak, a second review on the
// same day is a no-op, and any gap resets the counter to 1. LongestStreak
// never decreases. The receiver is not modified.
func (s *Streak) Advance(now time.Time) *Streak {
	today := DateOf(now)
	yesterday := today.AddDate(0, 0, -1)

	next := *s
	next.UpdatedAt = now.UTC()

	switch {
	case s.LastReviewDate.Equal(today):
		// Already counted today.
		return &next
	case s.LastReviewDate.Equal(yesterday):
		next.CurrentStreak = s.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastReviewDate = today

	return &next
}
