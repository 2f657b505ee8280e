package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// PlayerStats is the persisted history of a player across categories.
type PlayerStats struct {
	Categories   []entities.CategoryStats // one entry per category, in lobby order
	RoundsPlayed int
	TotalPoints  int
}

// StatsService reads round history.
type StatsService struct {
	repo RoundRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo RoundRepository) *StatsService {
	return &StatsService{repo: repo}
}

// GetPlayerStats returns per-category aggregates with zero rows for categories never played.
func (s *StatsService) GetPlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error) {
	rows, err := s.repo.GetStats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	byCategory := make(map[entities.Category]*entities.CategoryStats, len(rows))
	for _, r := range rows {
		byCategory[r.Category] = r
	}

	out := &PlayerStats{}
	for _, cat := range entities.Categories() {
		cs := entities.CategoryStats{PlayerID: playerID, Category: cat}
		if r, ok := byCategory[cat]; ok {
			cs = *r
		}
		out.Categories = append(out.Categories, cs)
		out.RoundsPlayed += cs.RoundsPlayed
		out.TotalPoints += cs.TotalPoints
	}

	return out, nil
}

// ResetPlayer erases the player's round history.
func (s *StatsService) ResetPlayer(ctx context.Context, playerID int64) error {
	if err := s.repo.DeletePlayer(ctx, playerID); err != nil {
		return fmt.Errorf("reset player: %w", err)
	}
	return nil
}
