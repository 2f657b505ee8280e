package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/alef-phonics-bot/internal/config"
	"github.com/aliskhannn/alef-phonics-bot/internal/delivery/telegram"
	"github.com/aliskhannn/alef-phonics-bot/internal/infra/gemini"
	"github.com/aliskhannn/alef-phonics-bot/internal/infra/postgres"
	"github.com/aliskhannn/alef-phonics-bot/internal/logger"
	"github.com/aliskhannn/alef-phonics-bot/internal/service"
	"github.com/aliskhannn/alef-phonics-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}
	lg.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "מסך הבית"},
		{Command: "play", Description: "בחירת הרפתקה"},
		{Command: "home", Description: "חזרה למסך הבית"},
		{Command: "score", Description: "הנקודות שלי"},
		{Command: "stats", Description: "ההיסטוריה שלי"},
		{Command: "reset", Description: "מחיקת ההיסטוריה"},
		{Command: "help", Description: "עזרה"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Round history.
	var rounds service.RoundRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			lg.Fatal("failed to migrate database", zap.Error(err))
		}

		rounds = service.NewHistoryService(postgres.NewTransactor(pool), pool)
		lg.Info("round history stored in postgres")
	} else {
		rounds = storage.NewRoundStorage()
		lg.Info("round history kept in memory")
	}

	// Question provider.
	provider, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.Generation.APIKey,
		Model:  cfg.Generation.Model,
	}, lg.Named("gemini"))
	if err != nil {
		lg.Fatal("failed to create gemini client", zap.Error(err))
	}

	contentService := service.NewContentService(
		provider,
		cfg.Generation.LanguageTag(),
		cfg.Generation.MaxOptions,
		lg.Named("content"),
	)
	if cfg.Generation.Shuffle {
		contentService.SetShuffler(service.NewOptionShuffler(time.Now().UnixNano()))
	}
	statsService := service.NewStatsService(rounds)

	controllerCfg := service.ControllerConfig{
		BatchSize: cfg.Generation.BatchSize,
		Timeout:   cfg.Generation.Timeout,
	}
	sessionLogger := lg.Named("session")
	registry := service.NewSessionRegistry(func(playerID int64) *service.Controller {
		// Rounds are played in private chats only, where the chat id is the user id.
		effects := telegram.NewChatEffects(bot, playerID, sessionLogger)
		return service.NewController(playerID, contentService, rounds, effects, controllerCfg, sessionLogger)
	})
	sweeper := service.NewSessionSweeper(registry, cfg.Sessions.IdleTTL, cfg.Sessions.SweepSpec, lg.Named("sweeper"))

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		registry,
		statsService,
		storage.NewMessageStorage(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(gctx)
	})
	g.Go(func() error {
		return sweeper.Start(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown complete")
}
