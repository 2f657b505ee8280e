package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		name                   string
		current, total, length int
		want                   string
	}{
		{"empty", 0, 5, 5, "[░░░░░]"},
		{"partial", 2, 5, 5, "[██░░░]"},
		{"full", 5, 5, 5, "[█████]"},
		{"overflow", 9, 5, 5, "[█████]"},
		{"no total", 0, 0, 3, "░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildProgressBar(tt.current, tt.total, tt.length))
		})
	}
}

func TestFormatQuestionEscapesMarkdown(t *testing.T) {
	q := entities.Question{
		Word:        "כלב-ים",
		Instruction: "כמה הברות יש במילה? (מחאו כפיים!)",
	}

	text := formatQuestion(q, 2, 5)

	assert.Contains(t, text, "שאלה 2 מתוך 5")
	assert.Contains(t, text, `*כלב\-ים*`)
	assert.Contains(t, text, `\(מחאו כפיים\!\)`)
}

func TestFormatAnswerFeedback(t *testing.T) {
	assert.Equal(t, "✅ נכון! +10", formatAnswerFeedback(service.AnswerResult{Correct: true, PointsAwarded: 10}))
	assert.Equal(t, "❌ התשובה הנכונה: 3", formatAnswerFeedback(service.AnswerResult{CorrectAnswer: "3"}))
}

func TestFormatCompletion(t *testing.T) {
	text := formatCompletion(entities.Completion{
		Category:    entities.CategorySyllableCount,
		Correct:     3,
		Total:       5,
		RoundPoints: 30,
		TotalScore:  70,
	})

	assert.Contains(t, text, "כל הכבוד")
	assert.Contains(t, text, "כמה הברות?")
	assert.Contains(t, text, "3/5")
	assert.Contains(t, text, `\+30 נקודות`)
	assert.Contains(t, text, "70 נקודות")
	assert.Contains(t, text, "🌟")
}

func TestFormatLobbyMarksCompleted(t *testing.T) {
	text := formatLobby(40, []entities.Category{entities.CategoryRhymeMatch})

	assert.Contains(t, text, "40 נקודות")
	assert.Contains(t, text, "מי מתחרז?")
	assert.Contains(t, text, "נמצא זוגות של מילים דומות ✅")
	assert.NotContains(t, text, "נמחה כפיים ונחלק את המילים ✅")
}

func TestFormatScore(t *testing.T) {
	assert.Contains(t, formatScore(0, nil), "עוד לא סיימתם")

	text := formatScore(30, []entities.Category{entities.CategoryInitialSound})
	assert.Contains(t, text, "30 נקודות")
	assert.Contains(t, text, "מה הצליל הפותח?")
}

func TestFormatStats(t *testing.T) {
	assert.Contains(t, formatStats(&service.PlayerStats{}), "עוד לא שיחקתם")

	at := time.Now()
	stats := &service.PlayerStats{
		Categories: []entities.CategoryStats{
			{Category: entities.CategorySyllableCount},
			{Category: entities.CategoryInitialSound, RoundsPlayed: 2, TotalPoints: 70, BestPoints: 40, LastPlayedAt: &at},
			{Category: entities.CategoryRhymeMatch},
		},
		RoundsPlayed: 2,
		TotalPoints:  70,
	}

	text := formatStats(stats)
	assert.Contains(t, text, "משחקים: 2 · שיא: 40 · סה\"כ: 70")
	assert.Contains(t, text, "סה\"כ 2 משחקים, 70 נקודות")
}
