package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mt5-data/internal/app"
	"mt5-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run returns the process exit code: 0 on completion or interrupt, 1 on a fatal error.
// Cancelling ctx is treated as a user interrupt.
func run(ctx context.Context) (code int) {
	defer func() {
		if e := recover(); e != nil {
			slog.Error("unexpected error", "panic", e)
			code = 1
		}
	}()

	slog.Info("mt5 data downloader starting")
	a, cleanup, err := InitializeApp(ctx)
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("interrupted by user")
			return 0
		}
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer cleanup()
	slog.Info("using data provider", "provider", a.DP.GetName())

	res, err := app.RunFlow(ctx, a.Config, a.DP, a.Saver, a.Metrics)
	if err != nil {
		slog.Error("download failed", "error", err)
		return 1
	}
	if res.Interrupted {
		slog.Info("download interrupted by user", "files", len(res.Files))
		return 0
	}
	slog.Info("done", "files", len(res.Files))
	return 0
}
