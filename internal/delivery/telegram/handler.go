package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	sessions SessionRegistry
	stats    StatsService
	messages MessageStorage
	rounds   sync.WaitGroup // round loads in flight
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	sessions SessionRegistry,
	stats StatsService,
	messages MessageStorage,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		sessions: sessions,
		stats:    stats,
		messages: messages,
	}
}

// Run polls Telegram for updates until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.rounds.Wait()
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		if cb := update.CallbackQuery; cb.Message != nil && cb.Message.Chat != nil && !cb.Message.Chat.IsPrivate() {
			h.answerCallback(cb.ID, msgPrivateOnly)
			return
		}
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	// Sessions and effects are bound to the player's private chat.
	if !update.Message.Chat.IsPrivate() {
		if update.Message.IsCommand() {
			_ = h.send(newPlainMessage(update.Message.Chat.ID, msgPrivateOnly))
		}
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	playerID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	var fn HandlerFunc
	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start", "home":
			fn = h.handleHome(playerID)
		case "play":
			fn = h.handlePlay(playerID, update.Message.CommandArguments())
		case "score":
			fn = h.handleScore(playerID)
		case "stats":
			fn = h.handleStats(playerID)
		case "reset":
			fn = h.handleResetPrompt()
		case "help":
			fn = h.handleHelp()
		default:
			fn = h.handleUnknownCommand()
		}
	} else {
		fn = h.handleText(playerID)
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// request performs a call whose result is not a message.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed",
			zap.Error(err),
		)
	}
}

// answerCallback removes the button spinner, showing text as a toast when set.
func (h *Handler) answerCallback(id, text string) {
	h.request(tgbotapi.NewCallback(id, text))
}

func (h *Handler) removeKeyboard(chatID int64, messageID int) {
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyKeyboard()))
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	h.request(tgbotapi.NewDeleteMessage(chatID, messageID))
}
