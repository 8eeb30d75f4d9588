package keypair

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	t.Parallel()

	generated, err := Generate()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keys", "base.json")
	require.NoError(t, generated.Write(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keypairFileMode), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, generated.Identity(), loaded.Identity())
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	t.Parallel()

	valid, err := Generate()
	require.NoError(t, err)
	mismatched := append([]byte(nil), valid.key...)
	mismatched[63] ^= 0xFF

	tests := map[string]string{
		"not json":     "abc",
		"short":        "[1,2,3]",
		"out of range": "[" + strings.Repeat("256,", 63) + "256]",
		"mismatched":   intsJSON(t, mismatched),
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := Load(path)
			require.ErrorIs(t, err, ErrInvalidKeypair)
		})
	}
}

func TestSignOnlyAsOwnIdentity(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	require.NoError(t, err)

	message := []byte("compiled message")
	signature, err := kp.Sign(context.Background(), kp.Identity(), message)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(kp.Identity().Bytes()), message, signature))

	_, err = kp.Sign(context.Background(), domain.Identity{0x01}, message)
	require.ErrorIs(t, err, domain.ErrInsufficientAuthorization)
}

func intsJSON(t *testing.T, b []byte) string {
	t.Helper()

	raw := make([]int, len(b))
	for i, v := range b {
		raw[i] = int(v)
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	return string(data)
}
