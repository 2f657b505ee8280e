package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

type statsKey struct {
	playerID int64
	category entities.Category
}

// RoundStorage keeps round history in memory. It is used when no database is configured
// and loses everything on restart.
type RoundStorage struct {
	mu     sync.RWMutex
	rounds map[string]entities.RoundResult
	stats  map[statsKey]entities.CategoryStats
}

// NewRoundStorage creates a new RoundStorage.
func NewRoundStorage() *RoundStorage {
	return &RoundStorage{
		rounds: make(map[string]entities.RoundResult),
		stats:  make(map[statsKey]entities.CategoryStats),
	}
}

// RecordRound stores the round and folds it into the category aggregate.
// A round already recorded is ignored.
func (s *RoundStorage) RecordRound(_ context.Context, r *entities.RoundResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rounds[r.ID]; ok {
		return nil
	}
	s.rounds[r.ID] = *r

	key := statsKey{playerID: r.PlayerID, category: r.Category}
	cs := s.stats[key]
	cs.PlayerID = r.PlayerID
	cs.Category = r.Category
	cs.RoundsPlayed++
	cs.TotalPoints += r.Points
	cs.BestPoints = max(cs.BestPoints, r.Points)
	if cs.LastPlayedAt == nil || r.CompletedAt.After(*cs.LastPlayedAt) {
		at := r.CompletedAt
		cs.LastPlayedAt = &at
	}
	s.stats[key] = cs

	return nil
}

// GetStats returns copies of the player's aggregates in lobby order.
func (s *RoundStorage) GetStats(_ context.Context, playerID int64) ([]*entities.CategoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.CategoryStats
	for _, cat := range entities.Categories() {
		cs, ok := s.stats[statsKey{playerID: playerID, category: cat}]
		if !ok {
			continue
		}
		if cs.LastPlayedAt != nil {
			at := *cs.LastPlayedAt
			cs.LastPlayedAt = &at
		}
		out = append(out, &cs)
	}

	return out, nil
}

// DeletePlayer drops the player's rounds and aggregates.
func (s *RoundStorage) DeletePlayer(_ context.Context, playerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.rounds {
		if r.PlayerID == playerID {
			delete(s.rounds, id)
		}
	}
	for key := range s.stats {
		if key.playerID == playerID {
			delete(s.stats, key)
		}
	}

	return nil
}
