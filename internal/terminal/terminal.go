// Package terminal describes the trading-terminal API consumed by mt5-data.
// The terminal itself is an external process; implementations of Terminal
// (see package gateway) only forward calls to it.
package terminal

import (
	"context"
	"time"

	"mt5-data/internal/model"
)

// Terminal is the subset of the terminal API used by the exporter.
// All calls block until the terminal answers.
type Terminal interface {
	// Initialize attaches to the terminal. An empty path lets the terminal pick its default install.
	Initialize(ctx context.Context, path string) error
	Login(ctx context.Context, login int64, password, server string) error
	AccountInfo(ctx context.Context) (*AccountInfo, error)
	// SymbolInfo returns ErrSymbolNotFound when the terminal does not know the symbol.
	SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error)
	SymbolSelect(ctx context.Context, symbol string, enable bool) error
	// CopyRatesRange returns bars with open time in [from, to].
	CopyRatesRange(ctx context.Context, symbol string, tf Timeframe, from, to time.Time) ([]model.Bar, error)
	// CopyRatesFrom returns up to count bars opened at or before anchor.
	CopyRatesFrom(ctx context.Context, symbol string, tf Timeframe, anchor time.Time, count int) ([]model.Bar, error)
	LastError(ctx context.Context) *Error
	Shutdown(ctx context.Context) error
}

// AccountInfo identifies the authenticated account.
type AccountInfo struct {
	Login   int64  `json:"login"`
	Server  string `json:"server"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
}

// SymbolInfo is instrument metadata.
type SymbolInfo struct {
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Spread  int64   `json:"spread"` // in points
	Point   float64 `json:"point"`
	Digits  int     `json:"digits"`
}
