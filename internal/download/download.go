// Package download drives the instrument x timeframe export matrix.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"mt5-data/internal/enrich"
	"mt5-data/internal/model"
	"mt5-data/internal/provider"
	"mt5-data/internal/saver"
	"mt5-data/internal/terminal"
)

// Job represents one export unit (symbol + timeframe)
type Job struct {
	Symbol    string
	Timeframe terminal.Timeframe
}

// JobResult is the outcome of one Job
type JobResult struct {
	Ok        bool
	Symbol    string
	Timeframe string
	Path      string
	Strategy  terminal.Strategy
	Bars      int
	Reason    string
}

// Recorder receives per-pair outcomes (metrics).
type Recorder interface {
	RecordExport(symbol, tf string, bars int, err error)
}

// Options configures one run.
type Options struct {
	DataDir  string
	DaysBack int
	Report   bool             // write .lastrun.success.json / .lastrun.failed.json
	Now      func() time.Time // defaults to time.Now
	Recorder Recorder         // optional
}

// Result summarizes a run.
type Result struct {
	RunID       string
	Files       []string
	Results     []JobResult
	Failed      []failedEntry
	Interrupted bool
}

// BuildJobs returns the matrix with instruments outer and timeframes inner.
func BuildJobs(instruments []string, timeframes []terminal.Timeframe) []Job {
	jobs := make([]Job, 0, len(instruments)*len(timeframes))
	for _, s := range instruments {
		for _, tf := range timeframes {
			jobs = append(jobs, Job{Symbol: s, Timeframe: tf})
		}
	}
	return jobs
}

// Run processes jobs sequentially. A failing pair is logged and skipped; a cancelled
// context stops the run before the next pair.
func Run(ctx context.Context, dp provider.DataProvider, s saver.RecordSaver, jobs []Job, opts Options) Result {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	res := Result{RunID: uuid.NewString()}
	slog.Info("jobs to download", "jobs", len(jobs), "provider", dp.GetName(), "run_id", res.RunID)

	for _, job := range jobs {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		jr := runJob(ctx, dp, s, job, opts)
		res.Results = append(res.Results, jr)
		if opts.Recorder != nil {
			var err error
			if !jr.Ok {
				err = errors.New(jr.Reason)
			}
			opts.Recorder.RecordExport(jr.Symbol, jr.Timeframe, jr.Bars, err)
		}
		if jr.Ok {
			res.Files = append(res.Files, jr.Path)
		} else {
			res.Failed = append(res.Failed, failedEntry{Symbol: jr.Symbol, Timeframe: jr.Timeframe, Reason: jr.Reason})
		}
	}
	if ctx.Err() != nil {
		res.Interrupted = true
	}

	logSummary(res)
	if opts.Report {
		if err := writeRunReport(opts.DataDir, res.RunID, res.Results, res.Failed); err != nil {
			slog.Warn("could not write run report", "error", err)
		}
	}
	return res
}

func runJob(ctx context.Context, dp provider.DataProvider, s saver.RecordSaver, job Job, opts Options) (jr JobResult) {
	tf := job.Timeframe.Label
	jr = JobResult{Symbol: job.Symbol, Timeframe: tf}
	defer func() {
		if e := recover(); e != nil {
			slog.Error("download panic", "symbol", job.Symbol, "timeframe", tf, "panic", e, "stack", string(debug.Stack()))
			jr = JobResult{Symbol: job.Symbol, Timeframe: tf, Reason: fmt.Sprintf("panic: %v", e)}
		}
	}()

	fail := func(err error) JobResult {
		slog.Error("download failed", "symbol", job.Symbol, "timeframe", tf, "error", err)
		jr.Reason = err.Error()
		return jr
	}

	slog.Info("downloading", "symbol", job.Symbol, "timeframe", tf)
	info, err := dp.ResolveSymbol(ctx, job.Symbol)
	if err != nil {
		return fail(err)
	}

	now := opts.Now()
	to := now.UTC()
	from := to.AddDate(0, 0, -opts.DaysBack)
	bars, strategy, err := dp.FetchBars(ctx, job.Symbol, job.Timeframe, from, to)
	if err != nil {
		return fail(err)
	}

	records := enrich.Records(bars, *info, job.Symbol, tf)
	path, err := saver.Export(s, opts.DataDir, job.Symbol, tf, now, records)
	if err != nil {
		return fail(err)
	}
	if path == "" {
		return fail(terminal.ErrNoData)
	}

	first, last := span(records)
	slog.Info("saved", "symbol", job.Symbol, "timeframe", tf, "bars", len(records), "strategy", strategy,
		"from", first.Format(model.TimeLayout), "to", last.Format(model.TimeLayout), "path", path)
	jr.Ok = true
	jr.Path = path
	jr.Bars = len(records)
	jr.Strategy = strategy
	return jr
}

// span returns the earliest and latest bar time.
func span(records []model.Record) (time.Time, time.Time) {
	first, last := records[0].Time, records[0].Time
	for _, r := range records[1:] {
		if r.Time.Before(first) {
			first = r.Time
		}
		if r.Time.After(last) {
			last = r.Time
		}
	}
	return first, last
}

func logSummary(res Result) {
	var total int
	for _, r := range res.Results {
		total += r.Bars
	}
	slog.Info("download finished", "files", len(res.Files), "failed", len(res.Failed), "total_bars", total, "interrupted", res.Interrupted)
	for _, f := range res.Files {
		slog.Info("summary file", "path", f)
	}
	if len(res.Failed) > 0 {
		slog.Info("summary failed", "count", len(res.Failed), "reasons", joinFailedReasons(res.Failed))
	}
}
