package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

func TestBuildAnswerKeyboardLayout(t *testing.T) {
	q := entities.Question{Options: []string{"1", "2", "3"}}

	kb := buildAnswerKeyboard(q, 7, 2)

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)

	assert.Equal(t, "1", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, buildAnswerCallback(7, 2, 0), *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildAnswerCallback(7, 2, 2), *kb.InlineKeyboard[1][0].CallbackData)

	home := kb.InlineKeyboard[2]
	require.Len(t, home, 1)
	assert.Equal(t, buildHomeCallback(), *home[0].CallbackData)
}

func TestBuildLobbyKeyboard(t *testing.T) {
	kb := buildLobbyKeyboard([]entities.Category{entities.CategoryInitialSound})

	require.Len(t, kb.InlineKeyboard, len(entities.Categories())+1)
	for i, c := range entities.Categories() {
		btn := kb.InlineKeyboard[i][0]
		assert.Equal(t, buildPlayCallback(c), *btn.CallbackData)
		if c == entities.CategoryInitialSound {
			assert.Contains(t, btn.Text, "✅")
		} else {
			assert.NotContains(t, btn.Text, "✅")
		}
	}
	assert.Equal(t, buildStatsCallback(), *kb.InlineKeyboard[3][0].CallbackData)
}

func TestBuildCompletionKeyboard(t *testing.T) {
	kb := buildCompletionKeyboard(entities.CategoryRhymeMatch)

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, buildPlayCallback(entities.CategoryRhymeMatch), *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildHomeCallback(), *kb.InlineKeyboard[1][0].CallbackData)
}
