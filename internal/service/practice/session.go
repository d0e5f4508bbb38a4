package practice

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// Status is the lifecycle state of a practice session.
type Status string

// Possible session status values
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Stats accumulates grading results over a session.
type Stats struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Session is one continuous practice run through a snapshot of due items.
// The snapshot is taken at start time and never changes afterwards: items
// becoming due mid-session wait for the next one. Sessions live only in
// memory; abandoning one has no side effects.
type Session struct {
	userID    uuid.UUID
	scope     domain.Scope
	snapshot  []DueItem
	startedAt time.Time

	// pools for distractor selection, captured alongside the snapshot
	distractors []domain.Item

	// mu guards index, stats, and status. Progress reads may run
	// concurrently with a submission advancing the session.
	mu     sync.RWMutex
	index  int
	stats  Stats
	status Status

	// submitMu serializes Submit for this session. A second submission
	// while one is in flight is rejected, never interleaved.
	submitMu sync.Mutex
}

// newSession builds an in-progress session over the given due set.
func newSession(
	userID uuid.UUID,
	scope domain.Scope,
	snapshot []DueItem,
	distractors []domain.Item,
	now time.Time,
) *Session {
	return &Session{
		userID:      userID,
		scope:       scope,
		snapshot:    snapshot,
		status:      StatusInProgress,
		startedAt:   now,
		distractors: distractors,
	}
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Stats returns the accumulated grading results.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Size returns the number of items in the snapshot.
func (s *Session) Size() int { return len(s.snapshot) }

// Index returns the zero-based position of the current item.
func (s *Session) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// progress returns the status, position, and stats as one consistent read,
// so a caller assembling a view never sees the index from before an
// advance combined with the stats from after it.
func (s *Session) progress() (Status, int, Stats) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.index, s.stats
}

// current returns the item under review.
func (s *Session) current() (*DueItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == StatusComplete || s.index >= len(s.snapshot) {
		return nil, ErrSessionComplete
	}
	return &s.snapshot[s.index], nil
}

// tryBegin claims the submission slot. Callers that get false must reject
// the submission with ErrSubmissionInFlight.
func (s *Session) tryBegin() bool {
	return s.submitMu.TryLock()
}

// end releases the submission slot.
func (s *Session) end() {
	s.submitMu.Unlock()
}

// advance records a graded result and moves to the next item, flipping the
// session to Complete when the snapshot is exhausted. It is only called
// after the result has been durably persisted.
func (s *Session) advance(correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Total++
	if correct {
		s.stats.Correct++
	} else {
		s.stats.Incorrect++
	}

	s.index++
	if s.index >= len(s.snapshot) {
		s.status = StatusComplete
	}
}

// sessionRegistry tracks at most one live session per user. Sessions for
// different users are fully independent.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// newSessionRegistry creates an empty registry.
func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[uuid.UUID]*Session)}
}

// get returns the user's live session, if any.
func (r *sessionRegistry) get(userID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

// put installs a session, replacing any previous one for the user.
func (r *sessionRegistry) put(userID uuid.UUID, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = session
}
