package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// PostgresReviewStateStore implements the store.ReviewStateStore interface
// using a PostgreSQL database as the storage backend. Both scheduling
// variants share one table, discriminated by the algorithm column.
type PostgresReviewStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStateStore creates a new PostgreSQL implementation of
// the ReviewStateStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller. If
// logger is nil, a default logger will be used.
func NewPostgresReviewStateStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_state_store")),
	}
}

// Ensure PostgresReviewStateStore implements store.ReviewStateStore interface
var _ store.ReviewStateStore = (*PostgresReviewStateStore)(nil)

const reviewStateColumns = `
	user_id, item_ref, algorithm, ease_factor, interval_days, repetitions,
	stage, last_result, last_reviewed_at, next_review_at, created_at, updated_at
`

// Get implements store.ReviewStateStore.Get.
// Returns store.ErrReviewStateNotFound if no state exists, which callers
// treat as "never reviewed".
func (s *PostgresReviewStateStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	ref domain.ItemRef,
) (*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND item_ref = $2
	`

	state, err := scanReviewState(s.db.QueryRowContext(ctx, query, userID, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStateNotFound
		}
		log.Error("failed to get review state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("item_ref", string(ref)))
		return nil, MapError(err)
	}

	return state, nil
}

// GetMany implements store.ReviewStateStore.GetMany.
// Refs without state are absent from the result map.
func (s *PostgresReviewStateStore) GetMany(
	ctx context.Context,
	userID uuid.UUID,
	refs []domain.ItemRef,
) (map[domain.ItemRef]*domain.ReviewState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	states := make(map[domain.ItemRef]*domain.ReviewState, len(refs))
	if len(refs) == 0 {
		return states, nil
	}

	query := `SELECT ` + reviewStateColumns + `
		FROM review_states
		WHERE user_id = $1 AND item_ref = ANY($2)
	`

	rawRefs := make([]string, len(refs))
	for i, ref := range refs {
		rawRefs[i] = string(ref)
	}

	rows, err := s.db.QueryContext(ctx, query, userID, rawRefs)
	if err != nil {
		log.Error("failed to get review states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("ref_count", len(refs)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		state, err := scanReviewState(rows)
		if err != nil {
			return nil, MapError(err)
		}
		states[state.ItemRef] = state
	}

	return states, MapError(rows.Err())
}

// Upsert implements store.ReviewStateStore.Upsert.
// It validates the state, then inserts or replaces the row keyed by
// (user_id, item_ref).
func (s *PostgresReviewStateStore) Upsert(ctx context.Context, state *domain.ReviewState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("review state validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("item_ref", string(state.ItemRef)))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_states (` + reviewStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, item_ref) DO UPDATE SET
			algorithm = EXCLUDED.algorithm,
			ease_factor = EXCLUDED.ease_factor,
			interval_days = EXCLUDED.interval_days,
			repetitions = EXCLUDED.repetitions,
			stage = EXCLUDED.stage,
			last_result = EXCLUDED.last_result,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at,
			updated_at = EXCLUDED.updated_at
	`

	var lastReviewedAt any
	if !state.LastReviewedAt.IsZero() {
		lastReviewedAt = state.LastReviewedAt
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		state.UserID,
		state.ItemRef,
		state.Algorithm,
		state.EaseFactor,
		state.IntervalDays,
		state.Repetitions,
		int(state.Stage),
		string(state.LastResult),
		lastReviewedAt,
		state.NextReviewAt,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert review state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID.String()),
			slog.String("item_ref", string(state.ItemRef)))
		return MapError(err)
	}

	log.Debug("review state upserted",
		slog.String("user_id", state.UserID.String()),
		slog.String("item_ref", string(state.ItemRef)),
		slog.String("algorithm", string(state.Algorithm)))
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReviewState maps a review_states row onto a domain.ReviewState.
func scanReviewState(row rowScanner) (*domain.ReviewState, error) {
	var (
		state          domain.ReviewState
		stage          int
		lastResult     string
		lastReviewedAt sql.NullTime
	)

	if err := row.Scan(
		&state.UserID,
		&state.ItemRef,
		&state.Algorithm,
		&state.EaseFactor,
		&state.IntervalDays,
		&state.Repetitions,
		&stage,
		&lastResult,
		&lastReviewedAt,
		&state.NextReviewAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	); err != nil {
		return nil, err
	}

	state.Stage = domain.Stage(stage)
	state.LastResult = domain.Result(lastResult)
	if lastReviewedAt.Valid {
		state.LastReviewedAt = lastReviewedAt.Time
	}

	return &state, nil
}
