package provider

import (
	"mt5-data/internal/provider/mt5"
	"mt5-data/internal/session"
)

// MT5Provider is a DataProvider backed by an open terminal session.
// It embeds *mt5.Fetcher to expose fetch capabilities with minimal boilerplate.
// The session is owned and closed by whoever opened it.
type MT5Provider struct {
	*mt5.Fetcher
}

// NewMT5Provider wraps an authenticated session.
func NewMT5Provider(sess *session.Session) *MT5Provider {
	return &MT5Provider{Fetcher: mt5.NewFetcher(sess.Terminal())}
}

// GetName returns provider name
func (p *MT5Provider) GetName() string {
	return "MetaTrader5"
}

// SetObserver injects a fetch observer (metrics). Pass nil to disable.
func (p *MT5Provider) SetObserver(o mt5.Observer) {
	if p.Fetcher != nil {
		p.Fetcher.Observer = o
	}
}
