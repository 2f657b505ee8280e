package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ChatEffects renders session effects in a player's private chat.
// Telegram animates messages made of a single emoji.
type ChatEffects struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewChatEffects(bot *tgbotapi.BotAPI, chatID int64, logger *zap.Logger) *ChatEffects {
	return &ChatEffects{bot: bot, chatID: chatID, logger: logger}
}

func (e *ChatEffects) Celebrate() {
	e.sendEmoji("🎉")
}

func (e *ChatEffects) Shake() {
	e.sendEmoji("🙈")
}

// Speak shows that a word is being read out. Telegram has no speech output,
// the word itself is in the question caption.
func (e *ChatEffects) Speak(string) {
	if _, err := e.bot.Request(tgbotapi.NewChatAction(e.chatID, tgbotapi.ChatRecordVoice)); err != nil {
		e.logger.Debug("failed to send chat action", zap.Error(err))
	}
}

func (e *ChatEffects) sendEmoji(emoji string) {
	if _, err := e.bot.Send(tgbotapi.NewMessage(e.chatID, emoji)); err != nil {
		e.logger.Warn("failed to send effect",
			zap.Int64("chat_id", e.chatID),
			zap.Error(err),
		)
	}
}
