package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
)

const (
	initializeInstruction = "initialize"

	rejectionSignatureFailure     = -32003
	anchorConstraintSigner        = 3010
	anchorAccountNotInitialized   = 3012
	anchorAccountOwnedByWrongProg = 3007
)

type Options struct {
	ProgramID domain.Identity
	// AppendInstruction is the program's append instruction name.
	AppendInstruction string
	// AccountType is the record account's type name, which seeds its
	// discriminator.
	AccountType string
	// TargetSigner holds the record account's own key. The record can only
	// be created when it is set.
	TargetSigner ports.TransactionSigner
	Logger       *slog.Logger
}

// Client builds, signs and submits the record program's instructions and
// decodes the record account.
type Client struct {
	ledger ports.LedgerEndpoint
	wallet ports.TransactionSigner
	opts   Options
}

var _ ports.ProgramClient = (*Client)(nil)

func NewClient(ledger ports.LedgerEndpoint, wallet ports.TransactionSigner, opts Options) *Client {
	if opts.AppendInstruction == "" {
		opts.AppendInstruction = "add_gif"
	}
	if opts.AccountType == "" {
		opts.AccountType = "BaseAccount"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{ledger: ledger, wallet: wallet, opts: opts}
}

func (c *Client) Initialize(ctx context.Context, target domain.Identity, signer domain.Identity) error {
	if c.opts.TargetSigner == nil {
		return fmt.Errorf("initialize: %w: the record account key is not available", domain.ErrInsufficientAuthorization)
	}

	ix := instruction{
		programID: c.opts.ProgramID,
		accounts: []accountMeta{
			{key: target, signer: true, writable: true},
			{key: signer, signer: true, writable: true},
			{key: domain.SystemProgramID},
		},
		data: instructionDiscriminator(initializeInstruction),
	}

	return c.submit(ctx, initializeInstruction, signer, ix)
}

func (c *Client) Append(ctx context.Context, target domain.Identity, signer domain.Identity, text string) error {
	if c.wallet == nil {
		return fmt.Errorf("%s: %w", c.opts.AppendInstruction, domain.ErrWalletUnavailable)
	}

	ix := instruction{
		programID: c.opts.ProgramID,
		accounts: []accountMeta{
			{key: target, writable: true},
			{key: signer, signer: true, writable: true},
		},
		data: appendBorshString(instructionDiscriminator(c.opts.AppendInstruction), text),
	}

	return c.submit(ctx, c.opts.AppendInstruction, signer, ix)
}

func (c *Client) Fetch(ctx context.Context, target domain.Identity) ([]domain.Entry, error) {
	data, err := c.ledger.AccountData(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch record: %w", err)
	}

	entries, err := decodeRecord(data, accountDiscriminator(c.opts.AccountType))
	if err != nil {
		return nil, fmt.Errorf("fetch record %s: %w", target, err)
	}
	return entries, nil
}

func (c *Client) submit(ctx context.Context, op string, payer domain.Identity, ix instruction) error {
	blockhash, err := c.ledger.RecentBlockhash(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg, err := compileMessage(payer, blockhash, ix)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	raw := msg.serialize()

	signatures := make([][]byte, 0, msg.requiredSigs)
	for _, key := range msg.signers() {
		signature, err := c.signerFor(key, payer).Sign(ctx, key, raw)
		if err != nil {
			return fmt.Errorf("%s: sign as %s: %w", op, key.Short(), err)
		}
		if len(signature) != signatureSize {
			return fmt.Errorf("%s: sign as %s: %w: signature has %d bytes", op, key.Short(), domain.ErrInsufficientAuthorization, len(signature))
		}
		signatures = append(signatures, signature)
	}

	signature, err := c.ledger.SubmitTransaction(ctx, serializeTransaction(signatures, raw))
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(op, err))
	}

	c.opts.Logger.Debug("instruction executed", slog.String("instruction", op), slog.String("signature", signature))
	return nil
}

func (c *Client) signerFor(key domain.Identity, payer domain.Identity) ports.TransactionSigner {
	if key == payer || c.opts.TargetSigner == nil {
		return c.wallet
	}
	return c.opts.TargetSigner
}

// classify maps a ledger rejection onto the error taxonomy. Errors that are
// not rejections (network failures) pass through unchanged.
func classify(op string, err error) error {
	var rejection *domain.LedgerRejection
	if !errors.As(err, &rejection) {
		return err
	}

	custom := func(code uint32) bool {
		return rejection.Custom != nil && *rejection.Custom == code
	}

	var kind error
	switch {
	case rejection.Code == rejectionSignatureFailure,
		rejection.Reason == "MissingRequiredSignature",
		custom(anchorConstraintSigner):
		kind = domain.ErrInsufficientAuthorization
	case op == initializeInstruction && (rejection.LogsContain("already in use") || custom(0)):
		kind = domain.ErrAlreadyInitialized
	case custom(anchorAccountNotInitialized),
		custom(anchorAccountOwnedByWrongProg),
		rejection.Reason == "AccountNotFound":
		kind = domain.ErrAccountNotFound
	default:
		kind = domain.ErrRejectedByProgram
	}

	return fmt.Errorf("%w: %w", kind, err)
}
