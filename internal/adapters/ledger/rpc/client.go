package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
	"golang.org/x/time/rate"
)

const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

var commitmentRank = map[string]int{
	CommitmentProcessed: 0,
	CommitmentConfirmed: 1,
	CommitmentFinalized: 2,
}

var errConfirmTimeout = errors.New("transaction was not confirmed in time")

// Client talks to a ledger node over JSON-RPC 2.0.
type Client struct {
	Endpoint       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// Commitment is used for reads, preflight and confirmation. Empty
	// means processed.
	Commitment     string
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	Limiter        *rate.Limiter
	Metrics        *Metrics
	Logger         *slog.Logger
}

var _ ports.LedgerEndpoint = (*Client)(nil)

// NewLimiter paces calls to rps with the given burst. rps <= 0 disables
// pacing.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

type blockhashResult struct {
	Value struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

type accountInfoResult struct {
	Value *struct {
		Data     []string `json:"data"`
		Owner    string   `json:"owner"`
		Lamports uint64   `json:"lamports"`
	} `json:"value"`
}

type signatureStatusesResult struct {
	Value []*struct {
		Slot               uint64          `json:"slot"`
		Err                json.RawMessage `json:"err"`
		ConfirmationStatus string          `json:"confirmationStatus"`
	} `json:"value"`
}

func (c *Client) RecentBlockhash(ctx context.Context) (domain.Hash, error) {
	var result blockhashResult
	if err := c.call(ctx, "getLatestBlockhash", &result, map[string]string{"commitment": c.commitment()}); err != nil {
		return domain.Hash{}, err
	}

	hash, err := domain.ParseHash(result.Value.Blockhash)
	if err != nil {
		return domain.Hash{}, fmt.Errorf("getLatestBlockhash: %w: %w", domain.ErrNetworkFailure, err)
	}
	return hash, nil
}

func (c *Client) SubmitTransaction(ctx context.Context, raw []byte) (string, error) {
	var signature string
	options := map[string]interface{}{
		"encoding":            "base64",
		"preflightCommitment": c.commitment(),
	}
	if err := c.call(ctx, "sendTransaction", &signature, base64.StdEncoding.EncodeToString(raw), options); err != nil {
		return "", err
	}

	if err := c.confirm(ctx, signature); err != nil {
		return signature, err
	}

	c.logger().Debug("transaction confirmed", slog.String("signature", signature), slog.String("commitment", c.commitment()))
	return signature, nil
}

func (c *Client) AccountData(ctx context.Context, account domain.Identity) ([]byte, error) {
	var result accountInfoResult
	options := map[string]string{"encoding": "base64", "commitment": c.commitment()}
	if err := c.call(ctx, "getAccountInfo", &result, account.String(), options); err != nil {
		return nil, err
	}

	if result.Value == nil {
		return nil, fmt.Errorf("account %s: %w", account, domain.ErrAccountNotFound)
	}
	if len(result.Value.Data) < 1 {
		return nil, fmt.Errorf("account %s: %w: missing data", account, domain.ErrDecoding)
	}
	if len(result.Value.Data) > 1 && result.Value.Data[1] != "base64" {
		return nil, fmt.Errorf("account %s: %w: unexpected encoding %q", account, domain.ErrDecoding, result.Value.Data[1])
	}

	data, err := base64.StdEncoding.DecodeString(result.Value.Data[0])
	if err != nil {
		return nil, fmt.Errorf("account %s: %w: %v", account, domain.ErrDecoding, err)
	}
	return data, nil
}

// confirm polls the signature status until it reaches the configured
// commitment, fails, or ConfirmTimeout passes.
func (c *Client) confirm(ctx context.Context, signature string) error {
	timeout := c.ConfirmTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	interval := c.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	want := commitmentRank[c.commitment()]

	deadline := time.Now().Add(timeout)
	for {
		var result signatureStatusesResult
		if err := c.call(ctx, "getSignatureStatuses", &result, []string{signature}); err != nil {
			return err
		}

		if len(result.Value) > 0 && result.Value[0] != nil {
			status := result.Value[0]
			if len(status.Err) > 0 && string(status.Err) != "null" {
				rejection := &domain.LedgerRejection{Message: "transaction failed", InstructionIndex: -1}
				applyTransactionError(rejection, status.Err)
				return fmt.Errorf("confirm %s: %w", signature, rejection)
			}
			if rank, ok := commitmentRank[status.ConfirmationStatus]; ok && rank >= want {
				return nil
			}
		}

		if time.Now().Add(interval).After(deadline) {
			return fmt.Errorf("confirm %s: %w: %w", signature, domain.ErrNetworkFailure, errConfirmTimeout)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("confirm %s: %w: %w", signature, domain.ErrNetworkFailure, ctx.Err())
		case <-timer.C:
		}
	}
}

func (c *Client) commitment() string {
	if _, ok := commitmentRank[c.Commitment]; ok {
		return c.Commitment
	}
	return CommitmentProcessed
}
