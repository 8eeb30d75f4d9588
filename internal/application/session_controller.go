package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
)

// SessionController sequences wallet authentication, record provisioning and
// entry submission for one user session.
//
// The session mutex is never held across wallet or ledger calls. Each call
// applies its result when it completes, so overlapping refreshes resolve as
// last-completion-wins.
type SessionController struct {
	deployment domain.Deployment
	wallet     ports.WalletAgent
	program    ports.ProgramClient
	clock      ports.Clock
	logger     *slog.Logger

	mu        sync.Mutex
	session   domain.Session
	restoring bool
}

func NewSessionController(deployment domain.Deployment, wallet ports.WalletAgent, program ports.ProgramClient, clock ports.Clock, logger *slog.Logger) *SessionController {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SessionController{
		deployment: deployment,
		wallet:     wallet,
		program:    program,
		clock:      clock,
		logger:     logger,
		session:    domain.NewSession(),
	}
}

func (c *SessionController) Deployment() domain.Deployment {
	return c.deployment
}

func (c *SessionController) Snapshot() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session.Clone()
}

// RestoreSession reconnects a previously trusted wallet without prompting.
// Failures are silent. Only the first call does anything.
func (c *SessionController) RestoreSession(ctx context.Context) {
	c.mu.Lock()
	if c.restoring {
		c.mu.Unlock()
		return
	}
	c.restoring = true
	c.mu.Unlock()

	if c.wallet == nil {
		c.logger.Debug("wallet restore skipped", slog.String("reason", "no wallet agent"))
		return
	}

	identity, err := c.wallet.Authenticate(ctx, false)
	if err != nil {
		c.logger.Debug("wallet restore skipped", slog.String("error", err.Error()))
		return
	}

	c.logger.Debug("wallet restored", slog.String("wallet", identity.String()))
	if c.attachWallet(identity) {
		_ = c.RefreshRecord(ctx)
	}
}

// Connect asks the wallet for interactive authentication.
func (c *SessionController) Connect(ctx context.Context) error {
	if c.Snapshot().Connected {
		return nil
	}

	if c.wallet == nil {
		c.notify("Connect wallet", domain.ErrWalletUnavailable)
		return fmt.Errorf("connect wallet: %w", domain.ErrWalletUnavailable)
	}

	identity, err := c.wallet.Authenticate(ctx, true)
	if err != nil {
		c.notify("Connect wallet", err)
		return fmt.Errorf("connect wallet: %w", err)
	}

	c.logger.Info("wallet connected", slog.String("wallet", identity.String()))
	c.clearNotice()
	if c.attachWallet(identity) {
		_ = c.RefreshRecord(ctx)
	}

	return nil
}

// RefreshRecord re-reads the target account. A missing account moves the
// record to Missing; any other failure is logged and leaves the record as it
// was. The returned error is for diagnostics only.
func (c *SessionController) RefreshRecord(ctx context.Context) error {
	target := c.deployment.TargetAccount
	entries, fetchErr := c.program.Fetch(ctx, target)

	c.mu.Lock()
	previous := c.session.Record.Status
	var err error
	switch {
	case fetchErr == nil:
		c.session.Record = c.session.Record.Resolve(entries)
	case errors.Is(fetchErr, domain.ErrAccountNotFound):
		next, transitionErr := c.session.Record.MarkMissing()
		if transitionErr != nil {
			err = errors.Join(fetchErr, transitionErr)
		} else {
			c.session.Record = next
		}
	default:
		err = fetchErr
	}
	current := c.session.Record.Status
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("refresh record failed, keeping previous state",
			slog.String("target", target.String()),
			slog.String("record", current.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("refresh record: %w", err)
	}

	c.logger.Debug("record refreshed",
		slog.String("from", previous.String()),
		slog.String("to", current.String()),
		slog.Int("entries", len(entries)),
	)
	return nil
}

// ProvisionRecord creates the shared record. It is only valid while the
// record is Missing and a wallet is connected.
func (c *SessionController) ProvisionRecord(ctx context.Context) error {
	c.mu.Lock()
	if !c.session.Connected || !c.session.Record.CanProvision() {
		connected, status := c.session.Connected, c.session.Record.Status
		c.mu.Unlock()
		return fmt.Errorf("provision record: %w (wallet connected: %t, record: %s)", domain.ErrInvalidState, connected, status)
	}
	signer := c.session.Wallet
	c.mu.Unlock()

	target := c.deployment.TargetAccount
	if err := c.program.Initialize(ctx, target, signer); err != nil {
		c.logger.Error("provision record failed",
			slog.String("target", target.String()),
			slog.String("error", err.Error()),
		)
		c.notify("Provision record", err)
		return fmt.Errorf("provision record: %w", err)
	}

	c.logger.Info("record provisioned", slog.String("target", target.String()))
	c.clearNotice()
	_ = c.RefreshRecord(ctx)

	return nil
}

// SubmitEntry appends text to the shared record. Pending input is cleared
// before the request is sent and is not restored if the request fails; the
// authoritative list always comes from the refresh that follows a success.
func (c *SessionController) SubmitEntry(ctx context.Context, text string) error {
	link := strings.TrimSpace(text)
	if link == "" {
		c.logger.Info("no link given")
		return domain.ErrEmptyEntry
	}

	c.mu.Lock()
	if !c.session.Connected || !c.session.Record.CanAppend() {
		connected, status := c.session.Connected, c.session.Record.Status
		c.mu.Unlock()
		return fmt.Errorf("submit entry: %w (wallet connected: %t, record: %s)", domain.ErrInvalidState, connected, status)
	}
	signer := c.session.Wallet
	c.session.PendingInput = ""
	c.mu.Unlock()

	target := c.deployment.TargetAccount
	if err := c.program.Append(ctx, target, signer, link); err != nil {
		c.logger.Error("submit entry failed",
			slog.String("target", target.String()),
			slog.String("link", link),
			slog.String("error", err.Error()),
		)
		c.notify("Submit link", err)
		return fmt.Errorf("submit entry: %w", err)
	}

	c.logger.Info("entry submitted", slog.String("link", link))
	c.clearNotice()
	_ = c.RefreshRecord(ctx)

	return nil
}

func (c *SessionController) UpdatePendingInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.PendingInput = text
}

func (c *SessionController) SubmitPending(ctx context.Context) error {
	c.mu.Lock()
	pending := c.session.PendingInput
	c.mu.Unlock()

	return c.SubmitEntry(ctx, pending)
}

func (c *SessionController) attachWallet(identity domain.Identity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Connected {
		return false
	}
	c.session.Wallet = identity
	c.session.Connected = true
	return true
}

func (c *SessionController) notify(action string, err error) {
	notice := &domain.Notice{
		Kind:    domain.NoticeKindOf(err),
		Message: fmt.Sprintf("%s: %v", action, err),
		At:      c.clock.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Notice = notice
}

func (c *SessionController) clearNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Notice = nil
}
