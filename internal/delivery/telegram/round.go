package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
)

// startRound shows a loading notice and loads the round in the background,
// so the update loop keeps serving other players while the provider answers.
func (h *Handler) startRound(ctx context.Context, chatID, playerID int64, category entities.Category) error {
	session := h.sessions.Get(playerID)

	switch session.Phase() {
	case entities.PhaseLoading:
		return h.send(newPlainMessage(chatID, msgLoadingInProgress))
	case entities.PhaseInProgress:
		if err := h.send(newPlainMessage(chatID, msgRoundInProgress)); err != nil {
			return err
		}
		return h.sendQuestion(chatID, session)
	case entities.PhaseCompleted:
		session.ReturnHome()
	}

	loadingID := 0
	if loading, err := h.bot.Send(newPlainMessage(chatID, msgLoading)); err != nil {
		h.logger.Warn("failed to send loading notice", zap.Error(err))
	} else {
		loadingID = loading.MessageID
	}

	h.rounds.Add(1)
	go func() {
		defer h.rounds.Done()
		h.loadRound(ctx, chatID, session, category, loadingID)
	}()

	return nil
}

func (h *Handler) loadRound(
	ctx context.Context,
	chatID int64,
	session *service.Controller,
	category entities.Category,
	loadingID int,
) {
	err := session.StartRound(ctx, category)

	if loadingID != 0 {
		h.deleteMessage(chatID, loadingID)
	}

	switch {
	case err == nil:
		if err := h.sendQuestion(chatID, session); err != nil {
			h.logger.Error("failed to send first question",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

	case ctx.Err() != nil:
		// Shutting down.

	case errors.Is(err, service.ErrStaleBatch), errors.Is(err, service.ErrInvalidTransition):
		h.logger.Debug("round start dropped",
			zap.Int64("player_id", session.PlayerID()),
			zap.Error(err),
		)

	case errors.Is(err, service.ErrNoContent):
		_ = h.sendLobby(chatID, session.PlayerID(), msgNoContent)

	default:
		h.logger.Error("failed to start round",
			zap.Int64("player_id", session.PlayerID()),
			zap.String("category", category.String()),
			zap.Error(err),
		)
		_ = h.send(newPlainMessage(chatID, msgInternalError))
	}
}

// sendQuestion shows the current question with its picture and answer buttons.
// It falls back to a text message when the picture cannot be delivered.
func (h *Handler) sendQuestion(chatID int64, session *service.Controller) error {
	view := session.View()
	if view.Phase != entities.PhaseInProgress {
		return nil
	}

	q := view.Question
	caption := formatQuestion(q, view.Current, view.Total)
	kb := buildAnswerKeyboard(q, view.Generation, view.Current-1)

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(q.ImageReference))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	photo.ReplyMarkup = kb

	sent, err := h.bot.Send(photo)
	if err != nil {
		h.logger.Warn("failed to send question image",
			zap.String("image", q.ImageReference),
			zap.Error(err),
		)

		msg := newMessage(chatID, caption)
		msg.ReplyMarkup = kb
		if sent, err = h.bot.Send(msg); err != nil {
			return fmt.Errorf("send question: %w", err)
		}
	}

	if prev, ok := h.messages.UpsertAndGetPrev(chatID, sent.MessageID); ok && prev.MessageID != sent.MessageID {
		h.removeKeyboard(chatID, prev.MessageID)
	}

	return nil
}
