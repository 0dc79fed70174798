package app

import (
	"context"
	"log/slog"
	"time"

	"mt5-data/internal/download"
	"mt5-data/internal/metrics"
	"mt5-data/internal/provider"
	"mt5-data/internal/saver"
)

// RunFlow runs the export matrix once and writes the metrics textfile when configured.
func RunFlow(ctx context.Context, cfg *Config, dp provider.DataProvider, s saver.RecordSaver, rec *metrics.Recorder) (download.Result, error) {
	timeframes, err := cfg.TimeframeList()
	if err != nil {
		return download.Result{}, err
	}
	slog.Info("save dir", "dir", cfg.DataDir, "format", s.Extension(), "days_back", cfg.DaysBack)

	jobs := download.BuildJobs(cfg.Instruments, timeframes)
	opts := download.Options{
		DataDir:  cfg.DataDir,
		DaysBack: cfg.DaysBack,
		Report:   cfg.RunReport,
	}
	if rec != nil {
		opts.Recorder = rec
	}
	res := download.Run(ctx, dp, s, jobs, opts)

	if rec != nil && cfg.MetricsFile != "" {
		rec.Finish(time.Now())
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("could not write metrics", "error", err)
		} else {
			slog.Info("metrics written", "path", cfg.MetricsFile)
		}
	}
	return res, nil
}
