package provider

import (
	"context"
	"time"

	"mt5-data/internal/model"
	"mt5-data/internal/terminal"
)

// DataProvider is the abstraction used by the download driver when accessing a data source.
// The underlying session is released by its owner, not by the provider.
type DataProvider interface {
	GetName() string
	ResolveSymbol(ctx context.Context, symbol string) (*terminal.SymbolInfo, error)
	FetchBars(ctx context.Context, symbol string, tf terminal.Timeframe, from, to time.Time) ([]model.Bar, terminal.Strategy, error)
}
