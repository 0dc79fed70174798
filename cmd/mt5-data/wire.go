//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"mt5-data/internal/app"
	"mt5-data/internal/provider"
	"mt5-data/internal/terminal"
	"mt5-data/internal/terminal/gateway"

	"github.com/google/wire"
)

// InitializeApp loads config and credentials, then opens the terminal session.
// Caller must call the returned cleanup when done; it shuts the session down.
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideCredentials,
		app.ProvideRecordSaver,
		app.ProvideGatewayClient,
		wire.Bind(new(terminal.Terminal), new(*gateway.Client)),
		app.ProvideSession,
		app.ProvideRecorder,
		app.ProvideMT5Provider,
		wire.Bind(new(provider.DataProvider), new(*provider.MT5Provider)),
		wire.Struct(new(App), "Config", "DP", "Saver", "Metrics"),
	)
	return nil, nil, nil
}
