package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

type fakeRoundRepo struct {
	fakeRecorder
	stats   []*entities.CategoryStats
	err     error
	deleted []int64
}

func (f *fakeRoundRepo) DeletePlayer(_ context.Context, playerID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, playerID)
	return nil
}

func (f *fakeRoundRepo) GetStats(_ context.Context, _ int64) ([]*entities.CategoryStats, error) {
	return f.stats, f.err
}

func TestStatsServiceFillsUnplayedCategories(t *testing.T) {
	played := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeRoundRepo{stats: []*entities.CategoryStats{
		{PlayerID: 9, Category: entities.CategoryRhymeMatch, RoundsPlayed: 3, TotalPoints: 90, BestPoints: 50, LastPlayedAt: &played},
		{PlayerID: 9, Category: entities.CategorySyllableCount, RoundsPlayed: 1, TotalPoints: 20, BestPoints: 20, LastPlayedAt: &played},
	}}

	got, err := NewStatsService(repo).GetPlayerStats(context.Background(), 9)
	require.NoError(t, err)

	require.Len(t, got.Categories, 3)
	for i, cat := range entities.Categories() {
		assert.Equal(t, cat, got.Categories[i].Category)
		assert.Equal(t, int64(9), got.Categories[i].PlayerID)
	}

	initial := got.Categories[1]
	assert.Equal(t, entities.CategoryInitialSound, initial.Category)
	assert.Zero(t, initial.RoundsPlayed)
	assert.Nil(t, initial.LastPlayedAt)

	assert.Equal(t, 4, got.RoundsPlayed)
	assert.Equal(t, 110, got.TotalPoints)
}

func TestStatsServiceRepositoryError(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &fakeRoundRepo{err: dbErr}

	_, err := NewStatsService(repo).GetPlayerStats(context.Background(), 1)
	require.ErrorIs(t, err, dbErr)
}

func TestStatsServiceResetPlayer(t *testing.T) {
	repo := &fakeRoundRepo{}
	require.NoError(t, NewStatsService(repo).ResetPlayer(context.Background(), 4))
	assert.Equal(t, []int64{4}, repo.deleted)

	repo.err = errors.New("boom")
	err := NewStatsService(repo).ResetPlayer(context.Background(), 4)
	require.ErrorIs(t, err, repo.err)
}
