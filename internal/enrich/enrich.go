// Package enrich derives candle metrics from raw bars.
package enrich

import (
	"math"

	"mt5-data/internal/model"
	"mt5-data/internal/terminal"
)

// Records converts bars into export records. It performs no I/O and
// returns identical output for identical input.
func Records(bars []model.Bar, info terminal.SymbolInfo, symbol, timeframe string) []model.Record {
	spread := float64(info.Spread) / 10
	out := make([]model.Record, 0, len(bars))
	for _, b := range bars {
		top := math.Max(b.Open, b.Close)
		bottom := math.Min(b.Open, b.Close)
		r := model.Record{
			Time:       b.UTC(),
			Symbol:     symbol,
			Timeframe:  timeframe,
			Open:       b.Open,
			High:       b.High,
			Low:        b.Low,
			Close:      b.Close,
			TickVolume: b.TickVolume,
			Spread:     spread,
			Range:      b.High - b.Low,
			Body:       math.Abs(b.Close - b.Open),
			UpperWick:  b.High - top,
			LowerWick:  bottom - b.Low,
			Point:      info.Point,
			Digits:     info.Digits,
		}
		if b.Close > b.Open {
			r.IsBullish = 1
		}
		out = append(out, r)
	}
	return out
}
