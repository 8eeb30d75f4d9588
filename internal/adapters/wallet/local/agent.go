package local

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/link-portal-cli/internal/adapters/seal"
	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
)

var (
	ErrWalletExists       = errors.New("wallet already exists")
	ErrPassphraseRequired = errors.New("passphrase is required")
)

type Options struct {
	// Name is the vault key holding the sealed recovery phrase.
	Name string
	// Origin identifies this app in the trust registry.
	Origin string
	// Passphrase unlocks the vault without prompting. Silent restore
	// requires it.
	Passphrase string
	Approver   Approver
	SealParams seal.Params
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Agent is a local wallet: a sealed recovery phrase, a per-origin trust
// registry and the keys unlocked during this process.
type Agent struct {
	vault ports.SecretStore
	trust ports.TrustRepository
	opts  Options

	mu       sync.Mutex
	unlocked map[domain.Identity]ed25519.PrivateKey
}

var _ ports.WalletAgent = (*Agent)(nil)

func NewAgent(vault ports.SecretStore, trust ports.TrustRepository, opts Options) *Agent {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.SealParams == (seal.Params{}) {
		opts.SealParams = seal.DefaultParams
	}

	return &Agent{
		vault:    vault,
		trust:    trust,
		opts:     opts,
		unlocked: map[domain.Identity]ed25519.PrivateKey{},
	}
}

// Create generates a recovery phrase, seals it and returns it once.
func (a *Agent) Create(ctx context.Context, passphrase string) (string, domain.Identity, error) {
	mnemonic, err := NewMnemonic()
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("create wallet: %w", err)
	}

	identity, err := a.store(ctx, mnemonic, passphrase)
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("create wallet: %w", err)
	}

	return mnemonic, identity, nil
}

func (a *Agent) Import(ctx context.Context, mnemonic string, passphrase string) (domain.Identity, error) {
	identity, err := a.store(ctx, mnemonic, passphrase)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("import wallet: %w", err)
	}
	return identity, nil
}

func (a *Agent) Address(ctx context.Context, passphrase string) (domain.Identity, error) {
	key, err := a.unlock(ctx, passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	return identityOf(key), nil
}

// Revoke removes this app's trust so the next session has to ask again.
func (a *Agent) Revoke(ctx context.Context) error {
	if err := a.trust.Delete(ctx, a.opts.Origin); err != nil {
		return fmt.Errorf("revoke %q: %w", a.opts.Origin, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.unlocked)

	return nil
}

// Authenticate grants this app the wallet identity. Non-interactive calls
// never prompt and only succeed for an origin trusted with that identity.
func (a *Agent) Authenticate(ctx context.Context, interactive bool) (domain.Identity, error) {
	if !interactive {
		return a.authenticateTrusted(ctx)
	}

	if _, err := a.sealed(ctx); err != nil {
		return domain.Identity{}, err
	}
	if a.opts.Approver == nil {
		return domain.Identity{}, fmt.Errorf("%w: no approver available", domain.ErrAuthenticationDeclined)
	}

	passphrase := a.opts.Passphrase
	if passphrase == "" {
		var err error
		passphrase, err = a.opts.Approver.Passphrase(ctx)
		if err != nil {
			return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrAuthenticationDeclined, err)
		}
	}

	key, err := a.unlock(ctx, passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	identity := identityOf(key)

	approved, err := a.opts.Approver.Approve(ctx, a.opts.Origin, identity)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrAuthenticationDeclined, err)
	}
	if !approved {
		return domain.Identity{}, fmt.Errorf("%w: connection to %q rejected", domain.ErrAuthenticationDeclined, a.opts.Origin)
	}

	trusted := domain.TrustedApp{Origin: a.opts.Origin, Identity: identity, ApprovedAt: a.opts.Clock.Now()}
	if err := a.trust.Save(ctx, trusted); err != nil {
		a.opts.Logger.Warn("remember trusted app failed", slog.String("origin", a.opts.Origin), slog.String("error", err.Error()))
	}

	a.authorize(key)
	return identity, nil
}

func (a *Agent) Sign(ctx context.Context, signer domain.Identity, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	key, ok := a.unlocked[signer]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("sign as %s: %w", signer.Short(), domain.ErrInsufficientAuthorization)
	}

	return ed25519.Sign(key, message), nil
}

func (a *Agent) authenticateTrusted(ctx context.Context) (domain.Identity, error) {
	if _, err := a.sealed(ctx); err != nil {
		return domain.Identity{}, err
	}

	trusted, err := a.trust.Get(ctx, a.opts.Origin)
	if err != nil {
		if errors.Is(err, domain.ErrTrustNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: %q is not trusted", domain.ErrAuthenticationDeclined, a.opts.Origin)
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrAuthenticationDeclined, err)
	}
	if a.opts.Passphrase == "" {
		return domain.Identity{}, fmt.Errorf("%w: wallet is locked", domain.ErrAuthenticationDeclined)
	}

	key, err := a.unlock(ctx, a.opts.Passphrase)
	if err != nil {
		return domain.Identity{}, err
	}
	identity := identityOf(key)
	if identity != trusted.Identity {
		return domain.Identity{}, fmt.Errorf("%w: %q was trusted for another wallet", domain.ErrAuthenticationDeclined, a.opts.Origin)
	}

	a.authorize(key)
	return identity, nil
}

func (a *Agent) store(ctx context.Context, mnemonic string, passphrase string) (domain.Identity, error) {
	if strings.TrimSpace(passphrase) == "" {
		return domain.Identity{}, ErrPassphraseRequired
	}

	normalized, err := normalizeMnemonic(mnemonic)
	if err != nil {
		return domain.Identity{}, err
	}
	key, err := DeriveKey(normalized, SolanaPath)
	if err != nil {
		return domain.Identity{}, err
	}

	_, err = a.vault.Get(ctx, a.opts.Name)
	switch {
	case err == nil:
		return domain.Identity{}, fmt.Errorf("%w: %q", ErrWalletExists, a.opts.Name)
	case !errors.Is(err, ports.ErrSecretNotFound):
		return domain.Identity{}, err
	}

	blob, err := seal.SealWith(a.opts.SealParams, passphrase, []byte(normalized))
	if err != nil {
		return domain.Identity{}, err
	}
	if err := a.vault.Put(ctx, a.opts.Name, blob); err != nil {
		return domain.Identity{}, err
	}

	return identityOf(key), nil
}

func (a *Agent) sealed(ctx context.Context) (string, error) {
	blob, err := a.vault.Get(ctx, a.opts.Name)
	if err != nil {
		if errors.Is(err, ports.ErrSecretNotFound) {
			return "", fmt.Errorf("%w: no wallet named %q", domain.ErrWalletUnavailable, a.opts.Name)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}
	return blob, nil
}

func (a *Agent) unlock(ctx context.Context, passphrase string) (ed25519.PrivateKey, error) {
	blob, err := a.sealed(ctx)
	if err != nil {
		return nil, err
	}

	mnemonic, err := seal.Open(passphrase, blob)
	if err != nil {
		if errors.Is(err, seal.ErrWrongPassphrase) {
			return nil, fmt.Errorf("%w: %v", domain.ErrAuthenticationDeclined, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}

	return DeriveKey(string(mnemonic), SolanaPath)
}

func (a *Agent) authorize(key ed25519.PrivateKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unlocked[identityOf(key)] = key
}

func identityOf(key ed25519.PrivateKey) domain.Identity {
	var identity domain.Identity
	copy(identity[:], key.Public().(ed25519.PublicKey))
	return identity
}
