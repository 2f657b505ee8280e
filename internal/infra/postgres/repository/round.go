package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/infra/postgres"
)

// RoundRepository provides access to completed rounds and their per-category aggregates.
type RoundRepository struct {
	db postgres.DBTX
}

// NewRoundRepository creates a new RoundRepository on a pool or a transaction.
func NewRoundRepository(db postgres.DBTX) *RoundRepository {
	return &RoundRepository{db: db}
}

// Insert stores a completed round. Inserting the same round twice is a no-op
// and reports false.
func (r *RoundRepository) Insert(ctx context.Context, round *entities.RoundResult) (bool, error) {
	id, err := uuid.Parse(round.ID)
	if err != nil {
		return false, fmt.Errorf("parse round id %q: %w", round.ID, err)
	}

	query := `
		INSERT INTO rounds (
			id, player_id, category, correct, total, points, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		id,
		round.PlayerID,
		round.Category,
		round.Correct,
		round.Total,
		round.Points,
		round.StartedAt,
		round.CompletedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert round: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// AddToStats folds a completed round into the player's category aggregate.
func (r *RoundRepository) AddToStats(ctx context.Context, round *entities.RoundResult) error {
	query := `
		INSERT INTO player_category_stats (
			player_id, category, rounds_played, total_points, best_points, last_played_at
		) VALUES ($1, $2, 1, $3, $3, $4)
		ON CONFLICT (player_id, category) DO UPDATE SET
			rounds_played = player_category_stats.rounds_played + 1,
			total_points = player_category_stats.total_points + EXCLUDED.total_points,
			best_points = GREATEST(player_category_stats.best_points, EXCLUDED.best_points),
			last_played_at = GREATEST(player_category_stats.last_played_at, EXCLUDED.last_played_at)
	`

	_, err := r.db.Exec(ctx, query, round.PlayerID, round.Category, round.Points, round.CompletedAt)
	if err != nil {
		return fmt.Errorf("upsert category stats: %w", err)
	}

	return nil
}

// GetStats returns the player's aggregates for every category played at least once.
func (r *RoundRepository) GetStats(ctx context.Context, playerID int64) ([]*entities.CategoryStats, error) {
	query := `
		SELECT player_id, category, rounds_played, total_points, best_points, last_played_at
		FROM player_category_stats
		WHERE player_id = $1
		ORDER BY category
	`

	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var stats []*entities.CategoryStats
	for rows.Next() {
		var s entities.CategoryStats
		if err := rows.Scan(
			&s.PlayerID,
			&s.Category,
			&s.RoundsPlayed,
			&s.TotalPoints,
			&s.BestPoints,
			&s.LastPlayedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		stats = append(stats, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category stats: %w", err)
	}

	return stats, nil
}

// DeletePlayer removes the player's rounds and aggregates.
func (r *RoundRepository) DeletePlayer(ctx context.Context, playerID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM rounds WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("delete rounds: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM player_category_stats WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("delete category stats: %w", err)
	}

	return nil
}
