package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
)

const (
	jsonRPCVersion       = "2.0"
	maxRPCResponseBytes  = 4 << 20
	errorBodyExcerptSize = 256
)

type rpcRequest struct {
	Version string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var requestIDs atomic.Uint64

// call performs one JSON-RPC request and decodes its result into out.
// Transport problems wrap domain.ErrNetworkFailure; an error object in the
// response becomes a *domain.LedgerRejection.
func (c *Client) call(ctx context.Context, method string, out interface{}, params ...interface{}) error {
	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("call %s: %w: %w", method, domain.ErrNetworkFailure, err)
	}

	started := time.Now()
	outcome, err := c.roundTrip(ctx, method, out, params)
	c.Metrics.observe(method, outcome, time.Since(started))
	c.logger().Debug("ledger call",
		slog.String("method", method),
		slog.String("outcome", outcome),
		slog.Duration("elapsed", time.Since(started)),
	)

	return err
}

func (c *Client) roundTrip(ctx context.Context, method string, out interface{}, params []interface{}) (string, error) {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(rpcRequest{Version: jsonRPCVersion, ID: requestIDs.Add(1), Method: method, Params: params})
	if err != nil {
		return outcomeTransportError, fmt.Errorf("encode %s request: %w", method, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return outcomeTransportError, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return outcomeTransportError, fmt.Errorf("call %s: %w: %w", method, domain.ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyExcerptSize))
		return outcomeHTTPError, fmt.Errorf("call %s: %w: status %d: %s", method, domain.ErrNetworkFailure, resp.StatusCode, bytes.TrimSpace(excerpt))
	}

	var payload rpcResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRPCResponseBytes)).Decode(&payload); err != nil {
		return outcomeTransportError, fmt.Errorf("decode %s response: %w: %w", method, domain.ErrNetworkFailure, err)
	}

	if payload.Error != nil {
		return outcomeRPCError, fmt.Errorf("call %s: %w", method, payload.Error.rejection())
	}

	if out == nil {
		return outcomeOK, nil
	}
	if err := json.Unmarshal(payload.Result, out); err != nil {
		return outcomeTransportError, fmt.Errorf("decode %s result: %w: %w", method, domain.ErrNetworkFailure, err)
	}

	return outcomeOK, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
