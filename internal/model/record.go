package model

import (
	"strconv"
	"time"
)

// TimeLayout is the layout of the time column in exported files.
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the fixed export column order.
var Columns = []string{
	"time", "symbol", "timeframe",
	"open", "high", "low", "close",
	"tick_volume", "spread",
	"range", "body", "upper_wick", "lower_wick",
	"is_bullish", "point", "digits",
}

// Record is a Bar enriched with symbol metadata and candle metrics.
type Record struct {
	Time       time.Time `json:"time" parquet:"time"`
	Symbol     string    `json:"symbol" parquet:"symbol"`
	Timeframe  string    `json:"timeframe" parquet:"timeframe"`
	Open       float64   `json:"open" parquet:"open"`
	High       float64   `json:"high" parquet:"high"`
	Low        float64   `json:"low" parquet:"low"`
	Close      float64   `json:"close" parquet:"close"`
	TickVolume int64     `json:"tick_volume" parquet:"tick_volume"`
	Spread     float64   `json:"spread" parquet:"spread"` // vendor spread / 10
	Range      float64   `json:"range" parquet:"range"`
	Body       float64   `json:"body" parquet:"body"`
	UpperWick  float64   `json:"upper_wick" parquet:"upper_wick"`
	LowerWick  float64   `json:"lower_wick" parquet:"lower_wick"`
	IsBullish  int       `json:"is_bullish" parquet:"is_bullish"`
	Point      float64   `json:"point" parquet:"point"`
	Digits     int       `json:"digits" parquet:"digits"`
}

// Row renders the record in Columns order.
func (r Record) Row() []string {
	return []string{
		r.Time.UTC().Format(TimeLayout),
		r.Symbol,
		r.Timeframe,
		floatStr(r.Open),
		floatStr(r.High),
		floatStr(r.Low),
		floatStr(r.Close),
		strconv.FormatInt(r.TickVolume, 10),
		floatStr(r.Spread),
		floatStr(r.Range),
		floatStr(r.Body),
		floatStr(r.UpperWick),
		floatStr(r.LowerWick),
		strconv.Itoa(r.IsBullish),
		floatStr(r.Point),
		strconv.Itoa(r.Digits),
	}
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
