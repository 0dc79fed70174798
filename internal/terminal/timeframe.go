package terminal

import (
	"fmt"
	"strings"
)

// Strategy names one way of requesting a bar window.
type Strategy string

const (
	// StrategyRange requests every bar in [from, to].
	StrategyRange Strategy = "range"
	// StrategyCountTo requests the most recent count bars ending at to.
	StrategyCountTo Strategy = "count_to"
	// StrategyCountFrom requests count bars anchored at from.
	StrategyCountFrom Strategy = "count_from"
)

// Timeframe is a bar granularity together with its fetch policy.
type Timeframe struct {
	Label       string
	Code        int // vendor granularity constant
	BarsPerHour int
	MaxBars     int
	Strategies  []Strategy
}

const maxBars = 100000

// Timeframes is the fixed set of supported granularities, in export order.
var Timeframes = []Timeframe{
	{Label: "M5", Code: 5, BarsPerHour: 12, MaxBars: maxBars, Strategies: []Strategy{StrategyRange, StrategyCountTo, StrategyCountFrom}},
	{Label: "M10", Code: 10, BarsPerHour: 6, MaxBars: maxBars, Strategies: []Strategy{StrategyRange, StrategyCountTo}},
	{Label: "M15", Code: 15, BarsPerHour: 4, MaxBars: maxBars, Strategies: []Strategy{StrategyRange, StrategyCountTo}},
}

// ParseTimeframe looks up a timeframe by label (case-insensitive).
func ParseTimeframe(label string) (Timeframe, error) {
	l := strings.ToUpper(strings.TrimSpace(label))
	for _, tf := range Timeframes {
		if tf.Label == l {
			return tf, nil
		}
	}
	return Timeframe{}, fmt.Errorf("unsupported timeframe %q", label)
}

// ParseTimeframes resolves labels in order, rejecting unknown ones.
func ParseTimeframes(labels []string) ([]Timeframe, error) {
	out := make([]Timeframe, 0, len(labels))
	for _, l := range labels {
		tf, err := ParseTimeframe(l)
		if err != nil {
			return nil, err
		}
		out = append(out, tf)
	}
	return out, nil
}

// BarCount estimates how many bars cover days of history, capped at MaxBars.
func (tf Timeframe) BarCount(days int) int {
	if days < 1 {
		days = 1
	}
	n := tf.BarsPerHour * 24 * days
	if tf.MaxBars > 0 && n > tf.MaxBars {
		n = tf.MaxBars
	}
	return n
}

func (tf Timeframe) String() string { return tf.Label }
