package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mt5-data/internal/credentials"
	"mt5-data/internal/metrics"
	"mt5-data/internal/provider"
	"mt5-data/internal/saver"
	"mt5-data/internal/session"
	"mt5-data/internal/slogx"
	"mt5-data/internal/terminal"
	"mt5-data/internal/terminal/gateway"
)

// ProvideConfig loads config and switches the default logger to its level (for Wire).
func ProvideConfig() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel))
	return cfg, nil
}

// ProvideCredentials loads the credentials file named in config (for Wire).
// Template values are reported but do not stop the run.
func ProvideCredentials(cfg *Config) (*credentials.Credentials, error) {
	path := cfg.CredentialsPath()
	slog.Info("loading credentials", "path", path)
	creds, err := credentials.Load(path)
	if err != nil {
		return nil, err
	}
	if p := creds.Placeholders(); len(p) > 0 {
		slog.Warn("credentials still contain template values, continuing", "fields", strings.Join(p, ","), "path", path)
	}
	return creds, nil
}

// ProvideGatewayClient creates the terminal gateway client (for Wire).
func ProvideGatewayClient(cfg *Config) *gateway.Client {
	return gateway.New(cfg.GatewayURL, cfg.GatewayTimeout)
}

// ProvideSession opens the terminal session (for Wire).
// The returned cleanup shuts the session down and is safe to call more than once.
func ProvideSession(ctx context.Context, term terminal.Terminal, creds *credentials.Credentials) (*session.Session, func(), error) {
	sess, err := session.Open(ctx, term, creds)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = sess.Close(context.WithoutCancel(ctx))
	}
	return sess, cleanup, nil
}

// ProvideRecordSaver creates RecordSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideRecordSaver(cfg *Config) (saver.RecordSaver, error) {
	s := saver.NewRecordSaver(cfg.SaveFormat)
	if s == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return s, nil
}

// ProvideRecorder creates the run metrics recorder (for Wire).
func ProvideRecorder() *metrics.Recorder {
	return metrics.New()
}

// ProvideMT5Provider wires the session-backed provider with fetch metrics (for Wire).
func ProvideMT5Provider(sess *session.Session, rec *metrics.Recorder) *provider.MT5Provider {
	p := provider.NewMT5Provider(sess)
	p.SetObserver(rec)
	return p
}
