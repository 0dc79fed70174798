// Package gateway implements terminal.Terminal over the HTTP JSON API of a
// terminal gateway running next to the trading terminal.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"mt5-data/internal/model"
	"mt5-data/internal/terminal"
)

// codeNoConnection mirrors the terminal's "no IPC connection" code and is
// reported when the gateway itself cannot be reached.
const codeNoConnection = -10004

// errUnexpectedStatus marks non-2xx responses without a terminal error body,
// such as a route 404 from a wrong GATEWAY_URL.
var errUnexpectedStatus = errors.New("unexpected gateway status")

// Client is a terminal.Terminal backed by the gateway HTTP API.
type Client struct {
	rc *resty.Client
}

// New creates a gateway client. A zero timeout means requests block until the terminal answers.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "mt5-data").
		SetTimeout(timeout)
	return &Client{rc: rc}
}

var _ terminal.Terminal = (*Client)(nil)

// do runs one request and returns the status code. Non-2xx responses with a
// terminal error body are returned as *terminal.Error.
func (c *Client) do(ctx context.Context, method, path string, body any, query map[string]string, out any) (int, error) {
	var apiErr terminal.Error
	req := c.rc.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		if apiErr.Code == 0 && apiErr.Message == "" {
			msg := strings.TrimSpace(resp.String())
			if msg == "" {
				msg = http.StatusText(resp.StatusCode())
			}
			return resp.StatusCode(), fmt.Errorf("%w %d from %s %s: %s", errUnexpectedStatus, resp.StatusCode(), method, path, msg)
		}
		e := apiErr
		return resp.StatusCode(), &e
	}
	return resp.StatusCode(), nil
}

// expectOK treats {"ok": false} like an error response and fills it from LastError.
func (c *Client) expectOK(ctx context.Context, op string, res okResponse) error {
	if res.OK {
		return nil
	}
	return fmt.Errorf("%s: %w", op, c.LastError(ctx))
}

func (c *Client) Initialize(ctx context.Context, path string) error {
	var res okResponse
	if _, err := c.do(ctx, http.MethodPost, "/initialize", initRequest{Path: path}, nil, &res); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return c.expectOK(ctx, "initialize", res)
}

func (c *Client) Login(ctx context.Context, login int64, password, server string) error {
	var res okResponse
	body := loginRequest{Login: login, Password: password, Server: server}
	if _, err := c.do(ctx, http.MethodPost, "/login", body, nil, &res); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return c.expectOK(ctx, "login", res)
}

func (c *Client) AccountInfo(ctx context.Context) (*terminal.AccountInfo, error) {
	var info terminal.AccountInfo
	if _, err := c.do(ctx, http.MethodGet, "/account", nil, nil, &info); err != nil {
		return nil, fmt.Errorf("account info: %w", err)
	}
	return &info, nil
}

func (c *Client) SymbolInfo(ctx context.Context, symbol string) (*terminal.SymbolInfo, error) {
	var info terminal.SymbolInfo
	status, err := c.do(ctx, http.MethodGet, "/symbols/"+url.PathEscape(symbol), nil, nil, &info)
	if status == http.StatusNotFound && !errors.Is(err, errUnexpectedStatus) {
		return nil, fmt.Errorf("%w: %s", terminal.ErrSymbolNotFound, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("symbol info %s: %w", symbol, err)
	}
	return &info, nil
}

func (c *Client) SymbolSelect(ctx context.Context, symbol string, enable bool) error {
	var res okResponse
	path := "/symbols/" + url.PathEscape(symbol) + "/select"
	if _, err := c.do(ctx, http.MethodPost, path, selectRequest{Enable: enable}, nil, &res); err != nil {
		return fmt.Errorf("symbol select %s: %w", symbol, err)
	}
	return c.expectOK(ctx, "symbol select "+symbol, res)
}

func (c *Client) CopyRatesRange(ctx context.Context, symbol string, tf terminal.Timeframe, from, to time.Time) ([]model.Bar, error) {
	q := map[string]string{
		"symbol":    symbol,
		"timeframe": strconv.Itoa(tf.Code),
		"from":      strconv.FormatInt(from.UTC().Unix(), 10),
		"to":        strconv.FormatInt(to.UTC().Unix(), 10),
	}
	return c.rates(ctx, "/rates/range", q)
}

func (c *Client) CopyRatesFrom(ctx context.Context, symbol string, tf terminal.Timeframe, anchor time.Time, count int) ([]model.Bar, error) {
	q := map[string]string{
		"symbol":    symbol,
		"timeframe": strconv.Itoa(tf.Code),
		"from":      strconv.FormatInt(anchor.UTC().Unix(), 10),
		"count":     strconv.Itoa(count),
	}
	return c.rates(ctx, "/rates/from", q)
}

func (c *Client) rates(ctx context.Context, path string, q map[string]string) ([]model.Bar, error) {
	var res RatesResponse
	if _, err := c.do(ctx, http.MethodGet, path, nil, q, &res); err != nil {
		return nil, fmt.Errorf("rates %s %s: %w", q["symbol"], path, err)
	}
	bars := make([]model.Bar, 0, len(res.Rates))
	for _, r := range res.Rates {
		bars = append(bars, r.ToBar())
	}
	return bars, nil
}

// LastError never fails: an unreachable gateway is reported as a no-connection error.
func (c *Client) LastError(ctx context.Context) *terminal.Error {
	var te terminal.Error
	if _, err := c.do(ctx, http.MethodGet, "/last_error", nil, nil, &te); err != nil {
		var apiErr *terminal.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return &terminal.Error{Code: codeNoConnection, Message: err.Error()}
	}
	return &te
}

func (c *Client) Shutdown(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/shutdown", nil, nil, nil); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
