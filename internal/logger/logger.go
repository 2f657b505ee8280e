package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/alef-phonics-bot/internal/config"
)

// New builds the application logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
