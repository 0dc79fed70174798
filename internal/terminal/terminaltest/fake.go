// Package terminaltest provides an in-memory terminal.Terminal for tests.
package terminaltest

import (
	"context"
	"sync"
	"time"

	"mt5-data/internal/model"
	"mt5-data/internal/terminal"
)

// Call records one method invocation on Fake.
type Call struct {
	Method string
	Symbol string
	Anchor time.Time
	Count  int
	Path   string
}

// Fake is a scripted terminal. Zero value is usable; unset hooks succeed.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	InitErr     map[string]error // keyed by path
	LoginErr    error
	Account     terminal.AccountInfo
	Symbols     map[string]*terminal.SymbolInfo
	SelectErr   map[string]error
	Range       map[string][]model.Bar // keyed by symbol/timeframe label
	From        map[string][]model.Bar // keyed by symbol/timeframe label
	RangeErr    error
	FromErr     error
	LastErr     *terminal.Error
	ShutdownErr error
}

// Key builds the Range/From map key.
func Key(symbol, tf string) string { return symbol + "/" + tf }

func (f *Fake) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Calls returns a copy of recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times method was invoked.
func (f *Fake) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) Initialize(_ context.Context, path string) error {
	f.record(Call{Method: "Initialize", Path: path})
	return f.InitErr[path]
}

func (f *Fake) Login(_ context.Context, _ int64, _, _ string) error {
	f.record(Call{Method: "Login"})
	return f.LoginErr
}

func (f *Fake) AccountInfo(_ context.Context) (*terminal.AccountInfo, error) {
	f.record(Call{Method: "AccountInfo"})
	a := f.Account
	return &a, nil
}

func (f *Fake) SymbolInfo(_ context.Context, symbol string) (*terminal.SymbolInfo, error) {
	f.record(Call{Method: "SymbolInfo", Symbol: symbol})
	info, ok := f.Symbols[symbol]
	if !ok {
		return nil, terminal.ErrSymbolNotFound
	}
	cp := *info
	return &cp, nil
}

func (f *Fake) SymbolSelect(_ context.Context, symbol string, enable bool) error {
	f.record(Call{Method: "SymbolSelect", Symbol: symbol})
	if err := f.SelectErr[symbol]; err != nil {
		return err
	}
	f.mu.Lock()
	if info, ok := f.Symbols[symbol]; ok {
		info.Visible = enable
	}
	f.mu.Unlock()
	return nil
}

func (f *Fake) CopyRatesRange(_ context.Context, symbol string, tf terminal.Timeframe, from, to time.Time) ([]model.Bar, error) {
	f.record(Call{Method: "CopyRatesRange", Symbol: symbol, Anchor: from})
	if f.RangeErr != nil {
		return nil, f.RangeErr
	}
	return f.Range[Key(symbol, tf.Label)], nil
}

func (f *Fake) CopyRatesFrom(_ context.Context, symbol string, tf terminal.Timeframe, anchor time.Time, count int) ([]model.Bar, error) {
	f.record(Call{Method: "CopyRatesFrom", Symbol: symbol, Anchor: anchor, Count: count})
	if f.FromErr != nil {
		return nil, f.FromErr
	}
	bars := f.From[Key(symbol, tf.Label)]
	if count < len(bars) {
		bars = bars[len(bars)-count:]
	}
	return bars, nil
}

func (f *Fake) LastError(_ context.Context) *terminal.Error {
	f.record(Call{Method: "LastError"})
	if f.LastErr == nil {
		return &terminal.Error{Code: 1, Message: "Success"}
	}
	return f.LastErr
}

func (f *Fake) Shutdown(_ context.Context) error {
	f.record(Call{Method: "Shutdown"})
	return f.ShutdownErr
}

// Bars builds n well-formed bars spaced step apart, starting at start.
func Bars(start time.Time, step time.Duration, n int) []model.Bar {
	out := make([]model.Bar, n)
	for i := range out {
		o := 100 + float64(i%7)
		c := o + float64(i%3) - 1
		out[i] = model.Bar{
			Time:       start.Add(time.Duration(i) * step).Unix(),
			Open:       o,
			High:       max(o, c) + 0.5,
			Low:        min(o, c) - 0.25,
			Close:      c,
			TickVolume: int64(10 + i),
			Spread:     3,
		}
	}
	return out
}

var _ terminal.Terminal = (*Fake)(nil)
