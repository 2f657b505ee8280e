package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

func round(id string, playerID int64, cat entities.Category, points int, at time.Time) *entities.RoundResult {
	return &entities.RoundResult{
		ID:          id,
		PlayerID:    playerID,
		Category:    cat,
		Correct:     points / entities.PointsPerCorrectAnswer,
		Total:       5,
		Points:      points,
		StartedAt:   at.Add(-time.Minute),
		CompletedAt: at,
	}
}

func TestRoundStorageAggregates(t *testing.T) {
	ctx := context.Background()
	s := NewRoundStorage()
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRound(ctx, round("a", 1, entities.CategoryRhymeMatch, 30, t0)))
	require.NoError(t, s.RecordRound(ctx, round("b", 1, entities.CategoryRhymeMatch, 50, t0.Add(time.Hour))))
	require.NoError(t, s.RecordRound(ctx, round("c", 1, entities.CategorySyllableCount, 10, t0)))
	require.NoError(t, s.RecordRound(ctx, round("d", 2, entities.CategoryRhymeMatch, 40, t0)))

	stats, err := s.GetStats(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, entities.CategorySyllableCount, stats[0].Category)
	assert.Equal(t, 1, stats[0].RoundsPlayed)

	rhyme := stats[1]
	assert.Equal(t, entities.CategoryRhymeMatch, rhyme.Category)
	assert.Equal(t, 2, rhyme.RoundsPlayed)
	assert.Equal(t, 80, rhyme.TotalPoints)
	assert.Equal(t, 50, rhyme.BestPoints)
	require.NotNil(t, rhyme.LastPlayedAt)
	assert.Equal(t, t0.Add(time.Hour), *rhyme.LastPlayedAt)
}

func TestRoundStorageIgnoresDuplicateRound(t *testing.T) {
	ctx := context.Background()
	s := NewRoundStorage()
	r := round("same", 1, entities.CategoryInitialSound, 20, time.Now())

	require.NoError(t, s.RecordRound(ctx, r))
	require.NoError(t, s.RecordRound(ctx, r))

	stats, err := s.GetStats(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].RoundsPlayed)
	assert.Equal(t, 20, stats[0].TotalPoints)
}

func TestRoundStorageReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewRoundStorage()
	require.NoError(t, s.RecordRound(ctx, round("a", 1, entities.CategoryRhymeMatch, 30, time.Now())))

	stats, err := s.GetStats(ctx, 1)
	require.NoError(t, err)
	stats[0].TotalPoints = 999
	*stats[0].LastPlayedAt = time.Time{}

	again, err := s.GetStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, again[0].TotalPoints)
	assert.False(t, again[0].LastPlayedAt.IsZero())
}

func TestRoundStorageDeletePlayer(t *testing.T) {
	ctx := context.Background()
	s := NewRoundStorage()
	require.NoError(t, s.RecordRound(ctx, round("a", 1, entities.CategoryRhymeMatch, 30, time.Now())))
	require.NoError(t, s.RecordRound(ctx, round("b", 2, entities.CategoryRhymeMatch, 30, time.Now())))

	require.NoError(t, s.DeletePlayer(ctx, 1))

	stats, err := s.GetStats(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, stats)

	stats, err = s.GetStats(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, stats, 1)

	// The same round id can be recorded again after a reset.
	require.NoError(t, s.RecordRound(ctx, round("a", 1, entities.CategoryRhymeMatch, 30, time.Now())))
	stats, err = s.GetStats(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}
