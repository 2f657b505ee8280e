package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/infra/postgres"
	"github.com/aliskhannn/alef-phonics-bot/internal/infra/postgres/repository"
)

// HistoryService persists completed rounds in PostgreSQL.
type HistoryService struct {
	tr Transactor
	db postgres.DBTX
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(tr Transactor, db postgres.DBTX) *HistoryService {
	return &HistoryService{tr: tr, db: db}
}

// RecordRound stores the round and updates the category aggregate in one transaction.
// A round already recorded is ignored.
func (s *HistoryService) RecordRound(ctx context.Context, r *entities.RoundResult) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		roundRepo := repository.NewRoundRepository(tx)

		inserted, err := roundRepo.Insert(ctx, r)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		return roundRepo.AddToStats(ctx, r)
	})
}

// GetStats returns the player's per-category aggregates.
func (s *HistoryService) GetStats(ctx context.Context, playerID int64) ([]*entities.CategoryStats, error) {
	return repository.NewRoundRepository(s.db).GetStats(ctx, playerID)
}

// DeletePlayer erases the player's rounds and aggregates.
func (s *HistoryService) DeletePlayer(ctx context.Context, playerID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return repository.NewRoundRepository(tx).DeletePlayer(ctx, playerID)
	})
}
