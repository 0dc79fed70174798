package mt5

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"mt5-data/internal/model"
	"mt5-data/internal/terminal"
)

// Observer receives one call per strategy attempt. rows is 0 on error.
type Observer interface {
	ObserveFetch(tf string, strategy terminal.Strategy, rows int, err error, elapsed time.Duration)
}

// Fetcher resolves symbols and fetches bar windows from an open terminal session.
type Fetcher struct {
	term     terminal.Terminal
	Observer Observer // optional
}

// NewFetcher wraps a terminal that is already initialized and logged in.
func NewFetcher(term terminal.Terminal) *Fetcher {
	return &Fetcher{term: term}
}

// ResolveSymbol looks the symbol up and makes it visible when needed.
func (f *Fetcher) ResolveSymbol(ctx context.Context, symbol string) (*terminal.SymbolInfo, error) {
	info, err := f.term.SymbolInfo(ctx, symbol)
	if err != nil {
		if errors.Is(err, terminal.ErrSymbolNotFound) {
			return nil, fmt.Errorf("%w: %s", terminal.ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("symbol info %s: %w", symbol, err)
	}
	if info.Visible {
		return info, nil
	}
	slog.Debug("symbol hidden, selecting", "symbol", symbol)
	if err := f.term.SymbolSelect(ctx, symbol, true); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", terminal.ErrSymbolNotVisible, symbol, err)
	}
	info.Visible = true
	return info, nil
}

// lookbackDays rounds the window up to whole days.
func lookbackDays(from, to time.Time) int {
	d := int(math.Ceil(to.Sub(from).Hours() / 24))
	if d < 1 {
		d = 1
	}
	return d
}

func (f *Fetcher) request(ctx context.Context, s terminal.Strategy, symbol string, tf terminal.Timeframe, from, to time.Time, count int) ([]model.Bar, error) {
	switch s {
	case terminal.StrategyRange:
		return f.term.CopyRatesRange(ctx, symbol, tf, from, to)
	case terminal.StrategyCountTo:
		return f.term.CopyRatesFrom(ctx, symbol, tf, to, count)
	case terminal.StrategyCountFrom:
		return f.term.CopyRatesFrom(ctx, symbol, tf, from, count)
	default:
		return nil, fmt.Errorf("unknown fetch strategy %q", s)
	}
}

// FetchBars tries the timeframe's strategies in order and returns the first non-empty result.
// When every strategy comes back empty or failing it returns an error wrapping terminal.ErrNoData.
func (f *Fetcher) FetchBars(ctx context.Context, symbol string, tf terminal.Timeframe, from, to time.Time) ([]model.Bar, terminal.Strategy, error) {
	count := tf.BarCount(lookbackDays(from, to))
	var lastErr error
	for i, s := range tf.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		start := time.Now()
		bars, err := f.request(ctx, s, symbol, tf, from, to, count)
		if f.Observer != nil {
			f.Observer.ObserveFetch(tf.Label, s, len(bars), err, time.Since(start))
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			slog.Warn("fetch strategy failed", "symbol", symbol, "timeframe", tf.Label, "strategy", s, "error", err)
			continue
		}
		if len(bars) > 0 {
			if i > 0 {
				slog.Info("fetched with fallback", "symbol", symbol, "timeframe", tf.Label, "strategy", s, "bars", len(bars))
			}
			return bars, s, nil
		}
		slog.Debug("fetch strategy returned no rows", "symbol", symbol, "timeframe", tf.Label, "strategy", s, "count", count)
	}

	te := f.term.LastError(ctx)
	slog.Warn("no data after all strategies", "symbol", symbol, "timeframe", tf.Label, "code", te.Code, "message", te.Message)
	if lastErr != nil {
		return nil, "", fmt.Errorf("%w for %s %s (code %d): %w", terminal.ErrNoData, symbol, tf.Label, te.Code, lastErr)
	}
	return nil, "", fmt.Errorf("%w for %s %s (code %d)", terminal.ErrNoData, symbol, tf.Label, te.Code)
}
