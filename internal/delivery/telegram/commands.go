package telegram

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
)

// handleHome abandons any round and shows the lobby.
func (h *Handler) handleHome(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if session, ok := h.sessions.Lookup(playerID); ok {
			session.ReturnHome()
		}

		if prev, ok := h.messages.Take(chatID); ok {
			h.removeKeyboard(chatID, prev.MessageID)
		}

		return h.sendLobby(chatID, playerID, "")
	}
}

// handlePlay starts the category named in args, or shows the lobby without one.
func (h *Handler) handlePlay(playerID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			return h.sendLobby(chatID, playerID, "")
		}

		category, err := entities.ParseCategory(args)
		if err != nil {
			return h.sendLobby(chatID, playerID, msgUnknownCategory)
		}

		return h.startRound(ctx, chatID, playerID, category)
	}
}

func (h *Handler) handleScore(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		view := h.view(playerID)
		return h.send(newMessage(chatID, formatScore(view.Score, view.Completed)))
	}
}

// handleStats shows the persisted round history.
func (h *Handler) handleStats(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.stats.GetPlayerStats(ctx, playerID)
		if err != nil {
			h.logger.Error("failed to get player stats",
				zap.Int64("player_id", playerID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgStatsUnavailable))
		}

		return h.send(newMessage(chatID, formatStats(stats)))
	}
}

func (h *Handler) handleResetPrompt() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpText()))
	}
}

func (h *Handler) handleUnknownCommand() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleText answers free text. Answers are given with buttons only.
func (h *Handler) handleText(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch h.view(playerID).Phase {
		case entities.PhaseInProgress:
			return h.send(newPlainMessage(chatID, msgUseButtons))
		case entities.PhaseLoading:
			return h.send(newPlainMessage(chatID, msgLoadingInProgress))
		default:
			return h.handleHome(playerID)(ctx, chatID)
		}
	}
}

// sendLobby shows the home screen, optionally preceded by a notice.
func (h *Handler) sendLobby(chatID, playerID int64, notice string) error {
	if notice != "" {
		if err := h.send(newPlainMessage(chatID, notice)); err != nil {
			return err
		}
	}

	view := h.view(playerID)
	msg := newMessage(chatID, formatLobby(view.Score, view.Completed))
	msg.ReplyMarkup = buildLobbyKeyboard(view.Completed)
	return h.send(msg)
}

// view returns the player's session snapshot. Players without a session
// are shown as idle with no score, and no session is created for them.
func (h *Handler) view(playerID int64) service.View {
	if session, ok := h.sessions.Lookup(playerID); ok {
		return session.View()
	}
	return service.View{Phase: entities.PhaseIdle}
}
