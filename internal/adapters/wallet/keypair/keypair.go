package keypair

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
)

const keypairFileMode = 0o600

var ErrInvalidKeypair = errors.New("invalid keypair file")

// Keypair is a standalone ed25519 key in the Solana CLI file format: a JSON
// array of the 64 private key bytes (seed followed by public key).
type Keypair struct {
	key ed25519.PrivateKey
}

var _ ports.TransactionSigner = (*Keypair)(nil)

func Generate() (*Keypair, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return &Keypair{key: key}, nil
}

func FromPrivateKey(key ed25519.PrivateKey) (*Keypair, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key has %d bytes", ErrInvalidKeypair, len(key))
	}
	return &Keypair{key: append(ed25519.PrivateKey(nil), key...)}, nil
}

func Load(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair %q: %w", path, err)
	}

	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidKeypair, path, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: %q has %d bytes, want %d", ErrInvalidKeypair, path, len(raw), ed25519.PrivateKeySize)
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, value := range raw {
		if value < 0 || value > 255 {
			return nil, fmt.Errorf("%w: %q byte %d out of range", ErrInvalidKeypair, path, i)
		}
		key[i] = byte(value)
	}

	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !derived.Equal(key) {
		return nil, fmt.Errorf("%w: %q public key does not match its seed", ErrInvalidKeypair, path)
	}

	return &Keypair{key: key}, nil
}

func (k *Keypair) Write(path string) error {
	raw := make([]int, len(k.key))
	for i, b := range k.key {
		raw[i] = int(b)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode keypair: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create keypair directory: %w", err)
	}
	if err := os.WriteFile(path, data, keypairFileMode); err != nil {
		return fmt.Errorf("write keypair %q: %w", path, err)
	}

	return nil
}

func (k *Keypair) Identity() domain.Identity {
	var identity domain.Identity
	copy(identity[:], k.key.Public().(ed25519.PublicKey))
	return identity
}

func (k *Keypair) Sign(ctx context.Context, signer domain.Identity, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if signer != k.Identity() {
		return nil, fmt.Errorf("sign as %s with keypair %s: %w", signer.Short(), k.Identity().Short(), domain.ErrInsufficientAuthorization)
	}

	return ed25519.Sign(k.key, message), nil
}
