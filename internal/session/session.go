// Package session owns the single terminal session of a run.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mt5-data/internal/credentials"
	"mt5-data/internal/terminal"
)

// Session is an authenticated terminal connection. Close must be called on every exit path.
type Session struct {
	term    terminal.Terminal
	Account terminal.AccountInfo

	closeOnce sync.Once
	closeErr  error
}

// Open initializes the terminal (preferring creds.Path when it exists) and logs in.
// On failure the terminal is shut down before returning.
func Open(ctx context.Context, term terminal.Terminal, creds *credentials.Credentials) (*Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	login, err := creds.Login.Int64()
	if err != nil {
		return nil, err
	}

	if err := initialize(ctx, term, creds); err != nil {
		return nil, err
	}
	s := &Session{term: term}

	if err := term.Login(ctx, login, creds.Password, creds.Server); err != nil {
		code := terminal.Code(err)
		if code == 0 {
			code = term.LastError(ctx).Code
		}
		_ = s.Close(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("login %d@%s failed (code %d): %w", login, creds.Server, code, err)
	}

	info, err := term.AccountInfo(ctx)
	if err != nil {
		slog.Warn("account info unavailable", "error", err)
		info = &terminal.AccountInfo{Login: login, Server: creds.Server}
	}
	s.Account = *info
	slog.Info("connected", "login", info.Login, "server", info.Server)
	return s, nil
}

func initialize(ctx context.Context, term terminal.Terminal, creds *credentials.Credentials) error {
	if creds.HasPath() {
		err := term.Initialize(ctx, creds.Path)
		if err == nil {
			return nil
		}
		slog.Warn("initialize from path failed, retrying without path", "path", creds.Path, "error", err)
	} else if creds.Path != "" {
		slog.Warn("terminal path does not exist, ignoring", "path", creds.Path)
	}
	if err := term.Initialize(ctx, ""); err != nil {
		return fmt.Errorf("initialize terminal (code %d): %w", lastCode(ctx, term, err), err)
	}
	return nil
}

func lastCode(ctx context.Context, term terminal.Terminal, err error) int {
	if code := terminal.Code(err); code != 0 {
		return code
	}
	return term.LastError(ctx).Code
}

// Terminal returns the underlying terminal for data requests.
func (s *Session) Terminal() terminal.Terminal { return s.term }

// Close shuts the terminal session down. Safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closeErr = s.term.Shutdown(ctx)
		if s.closeErr != nil {
			slog.Warn("terminal shutdown failed", "error", s.closeErr)
			return
		}
		slog.Info("disconnected")
	})
	return s.closeErr
}
