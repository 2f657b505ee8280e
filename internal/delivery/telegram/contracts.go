package telegram

import (
	"context"

	"github.com/aliskhannn/alef-phonics-bot/internal/service"
	"github.com/aliskhannn/alef-phonics-bot/internal/storage"
)

// SessionRegistry hands out the quiz session of a player.
type SessionRegistry interface {
	Get(playerID int64) *service.Controller
	Lookup(playerID int64) (*service.Controller, bool)
}

type StatsService interface {
	GetPlayerStats(ctx context.Context, playerID int64) (*service.PlayerStats, error)
	ResetPlayer(ctx context.Context, playerID int64) error
}

// MessageStorage tracks the last question message per chat.
type MessageStorage interface {
	UpsertAndGetPrev(chatID int64, messageID int) (prev storage.QuestionMessage, hadPrev bool)
	Take(chatID int64) (storage.QuestionMessage, bool)
}
