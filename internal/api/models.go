package api

import (
	"time"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/service/practice"
)

// StartSessionRequest represents the request body for starting a practice session
type StartSessionRequest struct {
	Scope string `json:"scope" validate:"omitempty,oneof=curriculum personal both"`
}

// SubmitAnswerRequest represents the request body for answering the current
// exercise. Rating is optional because intro exercises are ungraded.
type SubmitAnswerRequest struct {
	Rating string `json:"rating" validate:"omitempty,oneof=again hard good easy"`
}

// ItemResponse represents a vocabulary item in API responses
type ItemResponse struct {
	Ref                string `json:"ref"`
	Source             string `json:"source"`
	Target             string `json:"target"`
	Translation        string `json:"translation"`
	ExampleSentence    string `json:"example_sentence,omitempty"`
	ExampleTranslation string `json:"example_translation,omitempty"`
	AudioRef           string `json:"audio_ref,omitempty"`
	ExampleAudioRef    string `json:"example_audio_ref,omitempty"`
}

// ExerciseResponse represents the exercise to render for the current item
type ExerciseResponse struct {
	Ref     string         `json:"ref"`
	Type    string         `json:"type"`
	Item    ItemResponse   `json:"item"`
	Options []ItemResponse `json:"options,omitempty"`
}

// StatsResponse represents accumulated session grading results
type StatsResponse struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// SessionResponse represents practice session progress
type SessionResponse struct {
	Status   string            `json:"status"`
	Index    int               `json:"index"`
	Size     int               `json:"size"`
	Stats    StatsResponse     `json:"stats"`
	Exercise *ExerciseResponse `json:"exercise,omitempty"`
}

// ReviewStateResponse represents an item's scheduling state
type ReviewStateResponse struct {
	ItemRef        string     `json:"item_ref"`
	Algorithm      string     `json:"algorithm"`
	EaseFactor     float64    `json:"ease_factor,omitempty"`
	IntervalDays   int        `json:"interval_days,omitempty"`
	Repetitions    int        `json:"repetitions,omitempty"`
	Stage          string     `json:"stage,omitempty"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time  `json:"next_review_at"`
}

// StreakResponse represents a user's daily practice streak
type StreakResponse struct {
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	LastReviewDate string `json:"last_review_date,omitempty"`
}

// SubmitResponse represents the outcome of grading the current exercise
type SubmitResponse struct {
	State     ReviewStateResponse `json:"state"`
	Stats     StatsResponse       `json:"stats"`
	Completed bool                `json:"completed"`
	Streak    *StreakResponse     `json:"streak,omitempty"`

	// StreakPending is true when the review was recorded but the streak
	// update failed and will be retried on the next submission.
	StreakPending bool `json:"streak_pending,omitempty"`

	Next *ExerciseResponse `json:"next,omitempty"`
}

// itemToResponse converts a domain.Item to an ItemResponse
func itemToResponse(item domain.Item) ItemResponse {
	core := item.Core()
	return ItemResponse{
		Ref:                string(item.Ref()),
		Source:             string(item.Source()),
		Target:             core.Target,
		Translation:        core.Translation,
		ExampleSentence:    core.ExampleSentence,
		ExampleTranslation: core.ExampleTranslation,
		AudioRef:           core.AudioRef,
		ExampleAudioRef:    core.ExampleAudioRef,
	}
}

// exerciseToResponse converts a practice.Exercise to an ExerciseResponse
func exerciseToResponse(ex *practice.Exercise) *ExerciseResponse {
	if ex == nil {
		return nil
	}

	resp := &ExerciseResponse{
		Ref:  string(ex.Ref),
		Type: string(ex.Type),
		Item: itemToResponse(ex.Item),
	}
	for _, option := range ex.Options {
		resp.Options = append(resp.Options, itemToResponse(option))
	}
	return resp
}

// statsToResponse converts practice.Stats to a StatsResponse
func statsToResponse(stats practice.Stats) StatsResponse {
	return StatsResponse{
		Total:     stats.Total,
		Correct:   stats.Correct,
		Incorrect: stats.Incorrect,
	}
}

// sessionToResponse converts a practice.SessionView to a SessionResponse
func sessionToResponse(view *practice.SessionView) SessionResponse {
	return SessionResponse{
		Status:   string(view.Status),
		Index:    view.Index,
		Size:     view.Size,
		Stats:    statsToResponse(view.Stats),
		Exercise: exerciseToResponse(view.Exercise),
	}
}

// stateToResponse converts a domain.ReviewState to a ReviewStateResponse
func stateToResponse(state *domain.ReviewState) ReviewStateResponse {
	resp := ReviewStateResponse{
		ItemRef:      string(state.ItemRef),
		Algorithm:    string(state.Algorithm),
		NextReviewAt: state.NextReviewAt,
	}

	if state.Algorithm == domain.AlgorithmInterval {
		resp.EaseFactor = state.EaseFactor
		resp.IntervalDays = state.IntervalDays
		resp.Repetitions = state.Repetitions
	} else {
		resp.Stage = state.Stage.String()
	}

	if !state.LastReviewedAt.IsZero() {
		t := state.LastReviewedAt
		resp.LastReviewedAt = &t
	}

	return resp
}

// streakToResponse converts a domain.Streak to a StreakResponse
func streakToResponse(streak *domain.Streak) *StreakResponse {
	if streak == nil {
		return nil
	}

	resp := &StreakResponse{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	}
	if !streak.LastReviewDate.IsZero() {
		resp.LastReviewDate = streak.LastReviewDate.Format("2006-01-02")
	}
	return resp
}
