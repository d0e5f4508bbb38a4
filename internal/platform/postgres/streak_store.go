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

// PostgresStreakStore implements the store.StreakStore interface using a
// PostgreSQL database as the storage backend.
type PostgresStreakStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStreakStore creates a new PostgreSQL implementation of the
// StreakStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresStreakStore(db store.DBTX, logger *slog.Logger) *PostgresStreakStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStreakStore{
		db:     db,
		logger: logger.With(slog.String("component", "streak_store")),
	}
}

// Ensure PostgresStreakStore implements store.StreakStore interface
var _ store.StreakStore = (*PostgresStreakStore)(nil)

// Get implements store.StreakStore.Get.
// Returns store.ErrStreakNotFound if the user has no streak yet.
func (s *PostgresStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, current_streak, longest_streak, last_review_date, created_at, updated_at
		FROM streaks
		WHERE user_id = $1
	`

	var (
		streak         domain.Streak
		lastReviewDate sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&lastReviewDate,
		&streak.CreatedAt,
		&streak.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStreakNotFound
		}
		log.Error("failed to get streak",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if lastReviewDate.Valid {
		streak.LastReviewDate = domain.DateOf(lastReviewDate.Time)
	}

	return &streak, nil
}

// Upsert implements store.StreakStore.Upsert.
// It validates the streak, then inserts or replaces the row keyed by user ID.
func (s *PostgresStreakStore) Upsert(ctx context.Context, streak *domain.Streak) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := streak.Validate(); err != nil {
		log.Warn("streak validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO streaks (user_id, current_streak, longest_streak, last_review_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_review_date = EXCLUDED.last_review_date,
			updated_at = EXCLUDED.updated_at
	`

	var lastReviewDate any
	if !streak.LastReviewDate.IsZero() {
		lastReviewDate = streak.LastReviewDate
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		lastReviewDate,
		streak.CreatedAt,
		streak.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert streak",
			slog.String("error", err.Error()),
			slog.String("user_id", streak.UserID.String()))
		return MapError(err)
	}

	log.Debug("streak upserted",
		slog.String("user_id", streak.UserID.String()),
		slog.Int("current_streak", streak.CurrentStreak),
		slog.Int("longest_streak", streak.LongestStreak))
	return nil
}
