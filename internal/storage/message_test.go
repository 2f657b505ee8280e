package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStorageUpsertAndGetPrev(t *testing.T) {
	s := NewMessageStorage()

	_, had := s.UpsertAndGetPrev(10, 100)
	assert.False(t, had)

	prev, had := s.UpsertAndGetPrev(10, 101)
	require.True(t, had)
	assert.Equal(t, 100, prev.MessageID)
	assert.Equal(t, int64(10), prev.ChatID)

	cur, ok := s.Take(10)
	require.True(t, ok)
	assert.Equal(t, 101, cur.MessageID)

	_, ok = s.Take(11)
	assert.False(t, ok)
}

func TestMessageStorageTake(t *testing.T) {
	s := NewMessageStorage()
	s.UpsertAndGetPrev(10, 100)

	msg, ok := s.Take(10)
	require.True(t, ok)
	assert.Equal(t, 100, msg.MessageID)

	_, ok = s.Take(10)
	assert.False(t, ok)
}
