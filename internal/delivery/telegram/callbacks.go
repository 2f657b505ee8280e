package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	playerID := cb.From.ID
	cd := decodeCallback(cb.Data)

	var (
		toast string
		fn    HandlerFunc
	)

	switch cd.Action {
	case actionPlay:
		category, ok := parsePlay(cd)
		if !ok {
			toast = msgUnknownCategory
			break
		}
		fn = func(ctx context.Context, chatID int64) error {
			return h.startRound(ctx, chatID, playerID, category)
		}

	case actionAnswer:
		toast, fn = h.handleAnswer(ctx, cb, playerID, cd)

	case actionHome:
		fn = h.handleHome(playerID)

	case actionStats:
		fn = h.handleStats(playerID)

	case actionReset:
		fn = h.handleReset(playerID, cb.Message.MessageID, cd)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)

	if fn != nil {
		_ = h.withErrorHandling(fn)(ctx, chatID)
	}
}

// handleAnswer scores a pressed answer button. Buttons of earlier questions or
// abandoned rounds are ignored. It returns the toast text and what to show next.
func (h *Handler) handleAnswer(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	playerID int64,
	cd callbackData,
) (string, HandlerFunc) {
	chatID, messageID := cb.Message.Chat.ID, cb.Message.MessageID

	ref, ok := parseAnswer(cd)
	if !ok {
		return msgQuestionExpired, nil
	}

	session, ok := h.sessions.Lookup(playerID)
	if !ok {
		h.removeKeyboard(chatID, messageID)
		return msgQuestionExpired, nil
	}

	view := session.View()
	if view.Phase != entities.PhaseInProgress ||
		view.Generation != ref.Generation ||
		view.Current-1 != ref.Cursor ||
		ref.Option >= len(view.Question.Options) {
		h.logger.Debug("stale answer ignored",
			zap.Int64("player_id", playerID),
			zap.Uint64("generation", ref.Generation),
			zap.Int("cursor", ref.Cursor),
		)
		h.removeKeyboard(chatID, messageID)
		return msgQuestionExpired, nil
	}

	res, err := session.SubmitAnswer(ctx, view.Question.Options[ref.Option])
	if errors.Is(err, service.ErrInvalidTransition) {
		return msgQuestionExpired, nil
	}
	if err != nil {
		h.logger.Error("failed to submit answer",
			zap.Int64("player_id", playerID),
			zap.Error(err),
		)
		return msgInternalError, nil
	}

	h.messages.Take(chatID)
	h.removeKeyboard(chatID, messageID)

	next := func(ctx context.Context, chatID int64) error {
		if res.Completed {
			msg := newMessage(chatID, formatCompletion(res.Completion))
			msg.ReplyMarkup = buildCompletionKeyboard(res.Completion.Category)
			return h.send(msg)
		}
		return h.sendQuestion(chatID, session)
	}

	return formatAnswerFeedback(res), next
}

// handleReset erases the history after the player confirmed it.
func (h *Handler) handleReset(playerID int64, messageID int, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if len(cd.Params) != 1 || cd.Params[0] != resetConfirm {
			return h.send(tgbotapi.NewEditMessageText(chatID, messageID, msgResetCancelled))
		}

		if err := h.stats.ResetPlayer(ctx, playerID); err != nil {
			return err
		}

		h.logger.Info("player history reset", zap.Int64("player_id", playerID))
		return h.send(tgbotapi.NewEditMessageText(chatID, messageID, msgResetDone))
	}
}
