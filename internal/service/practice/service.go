package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/domain/exercise"
	"github.com/parla-app/parla-api/internal/domain/srs"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// Exercise is what the client renders for the current item: the item, the
// exercise form chosen for its mastery level, and the shuffled answer
// options for multiple-choice forms (empty for intro).
type Exercise struct {
	Item    domain.Item    `json:"item"`
	Ref     domain.ItemRef `json:"ref"`
	Type    exercise.Type  `json:"type"`
	Options []domain.Item  `json:"options,omitempty"`
}

// SessionView is a snapshot of session progress handed to callers.
type SessionView struct {
	Status   Status    `json:"status"`
	Index    int       `json:"index"`
	Size     int       `json:"size"`
	Stats    Stats     `json:"stats"`
	Exercise *Exercise `json:"exercise,omitempty"`
}

// SubmitResult reports the outcome of grading the current item.
type SubmitResult struct {
	State     *domain.ReviewState `json:"state"`
	Stats     Stats               `json:"stats"`
	Completed bool                `json:"completed"`
	Streak    *domain.Streak      `json:"streak,omitempty"`

	// StreakErr is non-nil when the review state was persisted but the
	// streak write failed. The session still advances; the streak update
	// is retryable and must not block grading.
	StreakErr error `json:"-"`

	Next *Exercise `json:"next,omitempty"`
}

// Service drives practice sessions. Submit calls for a single session are
// serialized; sessions for different users are independent.
type Service interface {
	// StartSession snapshots the current due set for the user and begins a
	// new session over it, replacing any session already in flight.
	// Returns ErrEmptyDueSet when nothing is due. An unauthenticated
	// caller (nil user ID) gets an empty due set, not an error.
	StartSession(ctx context.Context, userID uuid.UUID, scope domain.Scope) (*SessionView, error)

	// CurrentExercise returns the session's current exercise and progress.
	// Returns ErrNoActiveSession or ErrSessionComplete as appropriate.
	CurrentExercise(ctx context.Context, userID uuid.UUID) (*SessionView, error)

	// Submit grades the current item, persists the scheduling transition,
	// updates the streak, and advances the session. On a persistence
	// failure the session does not advance and the same rating can be
	// safely resubmitted. For an intro exercise the rating is ignored.
	Submit(ctx context.Context, userID uuid.UUID, rating domain.Rating) (*SubmitResult, error)

	// GetStreak returns the user's streak, zero-valued when absent.
	GetStreak(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)
}

// Config tunes the practice pipeline.
type Config struct {
	// DistractorCount is how many wrong answers accompany a
	// multiple-choice exercise when enough eligible items exist.
	DistractorCount int

	// MaxSessionItems caps the snapshot size. Zero means no cap.
	MaxSessionItems int
}

// service is the standard implementation of the Service interface.
type service struct {
	items    store.ItemStore
	reviews  store.ReviewStateStore
	streaks  store.StreakStore
	registry *srs.Registry
	sessions *sessionRegistry
	cfg      Config
	logger   *slog.Logger
	timeFunc func() time.Time  // Injectable for testing
	rngFunc  func() *rand.Rand // Injectable for testing
}

// Ensure service implements the Service interface
var _ Service = (*service)(nil)

// NewService creates the practice service.
func NewService(
	items store.ItemStore,
	reviews store.ReviewStateStore,
	streaks store.StreakStore,
	registry *srs.Registry,
	cfg Config,
	log *slog.Logger,
) Service {
	if items == nil {
		panic("items store cannot be nil")
	}
	if reviews == nil {
		panic("review state store cannot be nil")
	}
	if streaks == nil {
		panic("streak store cannot be nil")
	}
	if registry == nil {
		registry = srs.NewRegistry(nil)
	}
	if cfg.DistractorCount <= 0 {
		cfg.DistractorCount = 3
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		items:    items,
		reviews:  reviews,
		streaks:  streaks,
		registry: registry,
		sessions: newSessionRegistry(),
		cfg:      cfg,
		logger:   log.With(slog.String("component", "practice_service")),
		timeFunc: func() time.Time { return time.Now().UTC() },
		rngFunc: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// StartSession implements Service.StartSession.
func (s *service) StartSession(
	ctx context.Context,
	userID uuid.UUID,
	scope domain.Scope,
) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// An unauthenticated caller gets an empty due set rather than an error.
	if userID == uuid.Nil {
		return nil, ErrEmptyDueSet
	}
	if !scope.IsValid() {
		scope = domain.ScopeBoth
	}

	now := s.timeFunc()

	candidates, err := s.items.GetDueItems(ctx, userID, scope, now)
	if err != nil {
		log.Error("failed to load due candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("start_session", fmt.Errorf("failed to load due items: %w", err))
	}

	refs := make([]domain.ItemRef, len(candidates))
	for i, item := range candidates {
		refs[i] = item.Ref()
	}

	states, err := s.reviews.GetMany(ctx, userID, refs)
	if err != nil {
		log.Error("failed to load review states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("start_session", fmt.Errorf("failed to load review states: %w", err))
	}

	due := BuildDueSet(candidates, states, s.registry, now, s.cfg.MaxSessionItems)
	if len(due) == 0 {
		return nil, ErrEmptyDueSet
	}

	pool, err := s.items.GetDistractorPool(ctx, userID)
	if err != nil {
		log.Error("failed to load distractor pool",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("start_session", fmt.Errorf("failed to load distractor pool: %w", err))
	}

	session := newSession(userID, scope, due, pool, now)
	s.sessions.put(userID, session)

	log.Info("practice session started",
		slog.String("user_id", userID.String()),
		slog.String("scope", string(scope)),
		slog.Int("items", len(due)))

	return s.viewOf(session), nil
}

// CurrentExercise implements Service.CurrentExercise.
func (s *service) CurrentExercise(ctx context.Context, userID uuid.UUID) (*SessionView, error) {
	session, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return s.viewOf(session), nil
}

// Submit implements Service.Submit.
func (s *service) Submit(
	ctx context.Context,
	userID uuid.UUID,
	rating domain.Rating,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}

	if !session.tryBegin() {
		return nil, ErrSubmissionInFlight
	}
	defer session.end()

	cur, err := session.current()
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	state := cur.State
	if state == nil {
		state, err = s.registry.NewState(userID, cur.Item)
		if err != nil {
			return nil, newServiceError("submit", fmt.Errorf("failed to create review state: %w", err))
		}
	}

	scheduler := s.registry.ForSource(cur.Item.Source())
	intro := s.exerciseTypeFor(cur) == exercise.TypeIntro

	var (
		newState *domain.ReviewState
		correct  bool
	)
	if intro {
		// Intro completion is ungraded; the rating, if any, is ignored.
		newState = scheduler.CompleteIntro(state, now)
		correct = true
	} else {
		if !rating.IsValid() {
			return nil, ErrInvalidRating
		}
		newState = scheduler.Next(state, rating, now)
		correct = rating.Passing()
	}

	// Persist the scheduling transition first. On failure the session does
	// not advance, so the same rating can be resubmitted.
	if err := s.reviews.Upsert(ctx, newState); err != nil {
		log.Error("failed to persist review state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("item_ref", string(newState.ItemRef)))
		return nil, newServiceError("submit", fmt.Errorf("failed to persist review state: %w", err))
	}

	result := &SubmitResult{State: newState}

	// The streak write is independent of the review-state write: its
	// failure is reported but neither blocks grading nor rolls it back.
	if !intro {
		streak, streakErr := s.advanceStreak(ctx, userID, now)
		result.Streak = streak
		result.StreakErr = streakErr
	}

	session.advance(correct)
	result.Stats = session.Stats()
	result.Completed = session.Status() == StatusComplete
	if !result.Completed {
		result.Next = s.exerciseFor(session)
	}

	log.Debug("submission processed",
		slog.String("user_id", userID.String()),
		slog.String("item_ref", string(newState.ItemRef)),
		slog.String("rating", string(rating)),
		slog.Bool("intro", intro),
		slog.Bool("completed", result.Completed))

	return result, nil
}

// GetStreak implements Service.GetStreak.
func (s *service) GetStreak(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrStreakNotFound) {
			return domain.NewStreak(userID)
		}
		return nil, newServiceError("get_streak", err)
	}
	return streak, nil
}

// advanceStreak loads (or creates) the streak, advances it for a graded
// review at now, and persists it. The returned error is the retryable
// streak persistence failure, if any.
func (s *service) advanceStreak(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrStreakNotFound) {
			log.Warn("failed to load streak",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		streak, err = domain.NewStreak(userID)
		if err != nil {
			return nil, err
		}
	}

	next := streak.Advance(now)
	if err := s.streaks.Upsert(ctx, next); err != nil {
		log.Warn("failed to persist streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return streak, err
	}

	return next, nil
}

// exerciseTypeFor selects the exercise form for a due item.
func (s *service) exerciseTypeFor(item *DueItem) exercise.Type {
	stage := s.registry.StageEquivalent(item.State, item.Item.Source())
	return exercise.PickForItem(stage, item.Item)
}

// exerciseFor builds the renderable exercise for the session's current
// item, including shuffled multiple-choice options where the form needs
// them. Too few eligible distractors degrade the option list rather than
// failing the session.
func (s *service) exerciseFor(session *Session) *Exercise {
	cur, err := session.current()
	if err != nil {
		return nil
	}

	exType := s.exerciseTypeFor(cur)
	ex := &Exercise{
		Item: cur.Item,
		Ref:  cur.Item.Ref(),
		Type: exType,
	}

	if exType == exercise.TypeIntro {
		return ex
	}

	rng := s.rngFunc()
	restricted, fallback := splitPools(cur.Item, session.distractors)
	distractors := exercise.PickDistractors(rng, cur.Item, restricted, fallback, s.cfg.DistractorCount)
	ex.Options = exercise.BuildOptions(rng, cur.Item, distractors)
	return ex
}

// viewOf assembles the caller-facing snapshot of a session.
func (s *service) viewOf(session *Session) *SessionView {
	status, index, stats := session.progress()
	view := &SessionView{
		Status: status,
		Index:  index,
		Size:   session.Size(),
		Stats:  stats,
	}
	if status == StatusInProgress {
		view.Exercise = s.exerciseFor(session)
	}
	return view
}

// splitPools divides the distractor pool into the restricted pool drawn
// first and the fallback that pads it. Curriculum items prefer distractors
// from their own topic; personal items prefer the user's other personal
// items.
func splitPools(target domain.Item, pool []domain.Item) (restricted, fallback []domain.Item) {
	switch t := target.(type) {
	case *domain.CurriculumItem:
		for _, candidate := range pool {
			if c, ok := candidate.(*domain.CurriculumItem); ok && c.TopicID == t.TopicID {
				restricted = append(restricted, candidate)
			} else {
				fallback = append(fallback, candidate)
			}
		}
	default:
		for _, candidate := range pool {
			if candidate.Source() == domain.SourcePersonal {
				restricted = append(restricted, candidate)
			} else {
				fallback = append(fallback, candidate)
			}
		}
	}
	return restricted, fallback
}
