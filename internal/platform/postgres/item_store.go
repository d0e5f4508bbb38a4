package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface using a
// PostgreSQL database as the storage backend. Curriculum and personal items
// live in separate tables; eligibility joins against review_states on the
// pool-qualified ref.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

const curriculumDueQuery = `
	SELECT ci.id, ci.target, ci.translation, ci.example_sentence, ci.example_translation,
	       ci.audio_ref, ci.example_audio_ref, ci.topic_id
	FROM curriculum_items ci
	LEFT JOIN review_states rs
	  ON rs.user_id = $1 AND rs.item_ref = 'curriculum:' || ci.id::text
	WHERE rs.user_id IS NULL OR rs.next_review_at <= $2
`

const personalDueQuery = `
	SELECT pi.id, pi.target, pi.translation, pi.example_sentence, pi.example_translation,
	       pi.audio_ref, pi.example_audio_ref, pi.owner_id
	FROM personal_items pi
	LEFT JOIN review_states rs
	  ON rs.user_id = $1 AND rs.item_ref = 'personal:' || pi.id::text
	WHERE pi.owner_id = $1
	  AND (rs.user_id IS NULL OR rs.next_review_at <= $2)
`

// GetDueItems implements store.ItemStore.GetDueItems.
// It returns every in-scope item the user has either never reviewed or
// whose next review time is at or before now.
func (s *PostgresItemStore) GetDueItems(
	ctx context.Context,
	userID uuid.UUID,
	scope domain.Scope,
	now time.Time,
) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidScope, scope)
	}

	var items []domain.Item

	if scope.Includes(domain.SourceCurriculum) {
		curriculum, err := s.queryCurriculumItems(ctx, curriculumDueQuery, userID, now)
		if err != nil {
			log.Error("failed to query due curriculum items",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		items = append(items, curriculum...)
	}

	if scope.Includes(domain.SourcePersonal) {
		personal, err := s.queryPersonalItems(ctx, personalDueQuery, userID, now)
		if err != nil {
			log.Error("failed to query due personal items",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		items = append(items, personal...)
	}

	log.Debug("retrieved due items",
		slog.String("user_id", userID.String()),
		slog.String("scope", string(scope)),
		slog.Int("count", len(items)))
	return items, nil
}

const curriculumPoolQuery = `
	SELECT id, target, translation, example_sentence, example_translation,
	       '' AS audio_ref, '' AS example_audio_ref, topic_id
	FROM curriculum_items
`

const personalPoolQuery = `
	SELECT id, target, translation, example_sentence, example_translation,
	       '' AS audio_ref, '' AS example_audio_ref, owner_id
	FROM personal_items
	WHERE owner_id = $1
`

// GetDistractorPool implements store.ItemStore.GetDistractorPool.
// It returns the full curriculum plus the user's personal items with text
// fields only; distractors never need media references.
func (s *PostgresItemStore) GetDistractorPool(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	curriculum, err := s.queryCurriculumItems(ctx, curriculumPoolQuery)
	if err != nil {
		log.Error("failed to query curriculum distractor pool",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	personal, err := s.queryPersonalItems(ctx, personalPoolQuery, userID)
	if err != nil {
		log.Error("failed to query personal distractor pool",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return append(curriculum, personal...), nil
}

// queryCurriculumItems runs a query whose row shape matches CurriculumItem.
func (s *PostgresItemStore) queryCurriculumItems(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []domain.Item
	for rows.Next() {
		var item domain.CurriculumItem
		if err := rows.Scan(
			&item.ID,
			&item.Target,
			&item.Translation,
			&item.ExampleSentence,
			&item.ExampleTranslation,
			&item.AudioRef,
			&item.ExampleAudioRef,
			&item.TopicID,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// queryPersonalItems runs a query whose row shape matches PersonalItem.
func (s *PostgresItemStore) queryPersonalItems(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []domain.Item
	for rows.Next() {
		var item domain.PersonalItem
		if err := rows.Scan(
			&item.ID,
			&item.Target,
			&item.Translation,
			&item.ExampleSentence,
			&item.ExampleTranslation,
			&item.AudioRef,
			&item.ExampleAudioRef,
			&item.OwnerID,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
