package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
)

// seams for tests
var (
	loadConfig = config.LoadConfig
	newApp     = server.NewApp
)

func main() {
	os.Exit(run(context.Background(), os.Stdout))
}

// run returns the process exit code. Every startup failure, including a
// bad configuration, is reported through the JSON logger.
func run(ctx context.Context, out io.Writer) int {

	cfg, err := loadConfig()
	if err != nil {
		logging.NewJSONLogger(out, slog.LevelInfo).Error(ctx, "config load failed", "error", err)
		return 1
	}

	logger := logging.NewJSONLogger(out, logging.ParseLevel(cfg.LogLevel))

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		return 1
	}
	return 0
}
