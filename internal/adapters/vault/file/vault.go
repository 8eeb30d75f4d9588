package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/bnema/link-portal-cli/internal/ports"
)

const (
	vaultDirMode  = 0o700
	entryFileMode = 0o600
	entrySuffix   = ".sealed"
	tempPattern   = ".entry-*.tmp"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Vault stores one sealed blob per key as <root>/<key>.sealed. Keys are flat
// names; anything that could address a path outside root is rejected.
type Vault struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Vault)(nil)

func NewVault(root string) *Vault {
	return &Vault{root: filepath.Clean(root)}
}

func (v *Vault) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.MkdirAll(v.root, vaultDirMode); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}

	temp, err := os.CreateTemp(v.root, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp vault entry: %w", err)
	}
	tempName := temp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if err := temp.Chmod(entryFileMode); err != nil {
		_ = temp.Close()
		return fmt.Errorf("chmod temp vault entry: %w", err)
	}
	if _, err := temp.WriteString(value); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write vault entry %q: %w", key, err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close temp vault entry: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace vault entry %q: %w", key, err)
	}
	cleanup = false

	return nil
}

func (v *Vault) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return "", err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("vault entry %q: %w", key, ports.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read vault entry %q: %w", key, err)
	}

	return string(data), nil
}

func (v *Vault) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := v.pathForKey(key)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete vault entry %q: %w", key, err)
	}

	return nil
}

func (v *Vault) pathForKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("vault key is empty")
	}
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid vault key %q", key)
	}

	return filepath.Join(v.root, key+entrySuffix), nil
}
