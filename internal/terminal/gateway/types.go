package gateway

import (
	"mt5-data/internal/model"
)

type initRequest struct {
	Path string `json:"path,omitempty"`
}

type loginRequest struct {
	Login    int64  `json:"login"`
	Password string `json:"password"`
	Server   string `json:"server"`
}

type selectRequest struct {
	Enable bool `json:"enable"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// RateRaw is one bar as sent by the gateway. Volumes may arrive as floats.
type RateRaw struct {
	Time       int64         `json:"time"`
	Open       float64       `json:"open"`
	High       float64       `json:"high"`
	Low        float64       `json:"low"`
	Close      float64       `json:"close"`
	TickVolume FlexibleInt64 `json:"tick_volume"`
	Spread     FlexibleInt64 `json:"spread"`
	RealVolume FlexibleInt64 `json:"real_volume"`
}

// ToBar converts RateRaw to model.Bar
func (r RateRaw) ToBar() model.Bar {
	return model.Bar{
		Time:       r.Time,
		Open:       r.Open,
		High:       r.High,
		Low:        r.Low,
		Close:      r.Close,
		TickVolume: r.TickVolume.Int64(),
		Spread:     r.Spread.Int64(),
		RealVolume: r.RealVolume.Int64(),
	}
}

// RatesResponse is the body of both rates endpoints.
type RatesResponse struct {
	Symbol    string    `json:"symbol"`
	Timeframe int       `json:"timeframe"`
	Rates     []RateRaw `json:"rates"`
}
