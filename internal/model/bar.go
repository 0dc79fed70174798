package model

import "time"

// Bar represents one OHLCV bar as returned by the terminal.
// Shared by provider, enrich and saver.
type Bar struct {
	Time       int64   `json:"time"` // Unix timestamp in seconds, UTC
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	TickVolume int64   `json:"tick_volume"`
	Spread     int64   `json:"spread"`
	RealVolume int64   `json:"real_volume"`
}

// UTC returns the bar open time.
func (b Bar) UTC() time.Time {
	return time.Unix(b.Time, 0).UTC()
}
