package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	aliceIdentity = domain.Identity{0x0A, 0x11}
	bobIdentity   = domain.Identity{0x0B, 0x22}
)

func TestTrustRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "trusted.toml")
	repo, err := NewTrustRepository(path)
	require.NoError(t, err)

	approved := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	app := domain.TrustedApp{Origin: "link-portal", Identity: aliceIdentity, ApprovedAt: approved}
	require.NoError(t, repo.Save(context.Background(), app))

	got, err := repo.Get(context.Background(), "link-portal")
	require.NoError(t, err)
	assert.Equal(t, app, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(trustFileMode), info.Mode().Perm())
}

func TestTrustRepositorySaveReplacesOrigin(t *testing.T) {
	t.Parallel()

	repo, err := NewTrustRepository(filepath.Join(t.TempDir(), "trusted.toml"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.TrustedApp{Origin: "link-portal", Identity: aliceIdentity}))
	require.NoError(t, repo.Save(context.Background(), domain.TrustedApp{Origin: "other", Identity: aliceIdentity}))
	require.NoError(t, repo.Save(context.Background(), domain.TrustedApp{Origin: "link-portal", Identity: bobIdentity}))

	got, err := repo.Get(context.Background(), "link-portal")
	require.NoError(t, err)
	assert.Equal(t, bobIdentity, got.Identity)

	other, err := repo.Get(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, aliceIdentity, other.Identity)
}

func TestTrustRepositoryGetMissing(t *testing.T) {
	t.Parallel()

	repo, err := NewTrustRepository(filepath.Join(t.TempDir(), "trusted.toml"))
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), "link-portal")
	require.ErrorIs(t, err, domain.ErrTrustNotFound)
}

func TestTrustRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo, err := NewTrustRepository(filepath.Join(t.TempDir(), "trusted.toml"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), domain.TrustedApp{Origin: "link-portal", Identity: aliceIdentity}))

	require.NoError(t, repo.Delete(context.Background(), "link-portal"))
	_, err = repo.Get(context.Background(), "link-portal")
	require.ErrorIs(t, err, domain.ErrTrustNotFound)

	require.ErrorIs(t, repo.Delete(context.Background(), "link-portal"), domain.ErrTrustNotFound)
}

func TestTrustRepositoryRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trusted.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	repo, err := NewTrustRepository(path)
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), "link-portal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trust schema version 99")
}

func TestTrustRepositoryRejectsCorruptIdentity(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trusted.toml")
	content := "version = 1\n\n[[apps]]\norigin = \"link-portal\"\nidentity = \"0OIl\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	repo, err := NewTrustRepository(path)
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), "link-portal")
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestTrustRepositoryConcurrentSavesKeepEveryOrigin(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trusted.toml")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo, err := NewTrustRepository(path)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, repo.Save(context.Background(), domain.TrustedApp{Origin: "app-" + strconv.Itoa(i), Identity: aliceIdentity}))
		}(i)
	}
	wg.Wait()

	repo, err := NewTrustRepository(path)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, err := repo.Get(context.Background(), "app-"+strconv.Itoa(i))
		assert.NoError(t, err)
	}
}

func TestNewTrustRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewTrustRepository("  ")
	require.Error(t, err)
}
