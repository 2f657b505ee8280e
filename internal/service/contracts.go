package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

// Provider is the external text-generation backend.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BatchSource supplies question batches to a session.
type BatchSource interface {
	RequestBatch(ctx context.Context, category entities.Category, count int) []entities.Question
}

// RoundRecorder receives every completed round.
type RoundRecorder interface {
	RecordRound(ctx context.Context, r *entities.RoundResult) error
}

// RoundRepository stores round history and serves per-category aggregates.
type RoundRepository interface {
	RoundRecorder
	GetStats(ctx context.Context, playerID int64) ([]*entities.CategoryStats, error)
	DeletePlayer(ctx context.Context, playerID int64) error
}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// Effects are display side effects the session may trigger.
// Nothing in the session depends on them for correctness.
type Effects interface {
	Celebrate()        // correct answer
	Shake()            // wrong answer
	Speak(text string) // a new question became current
}

// NopEffects ignores every effect.
type NopEffects struct{}

func (NopEffects) Celebrate() {}
func (NopEffects) Shake() {}
func (NopEffects) Speak(string) {}
