package seal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Params{Time: 1, MemoryKB: 8 * 1024, Threads: 1}

func TestSealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	blob, err := SealWith(fastParams, "hunter2", []byte("abandon ability able"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blob, blobPrefix))
	assert.NotContains(t, blob, "abandon")

	plaintext, err := Open("hunter2", blob)
	require.NoError(t, err)
	assert.Equal(t, "abandon ability able", string(plaintext))
}

func TestSealUsesFreshSaltAndNonce(t *testing.T) {
	t.Parallel()

	first, err := SealWith(fastParams, "pw", []byte("same"))
	require.NoError(t, err)
	second, err := SealWith(fastParams, "pw", []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpenRejectsWrongPassphrase(t *testing.T) {
	t.Parallel()

	blob, err := SealWith(fastParams, "right", []byte("secret"))
	require.NoError(t, err)

	_, err = Open("wrong", blob)
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestOpenRejectsMalformedBlobs(t *testing.T) {
	t.Parallel()

	for _, blob := range []string{"", "plain text", blobPrefix + "{", blobPrefix + `{"version":9,"kdf":"argon2id"}`} {
		_, err := Open("pw", blob)
		assert.ErrorIs(t, err, ErrMalformed, "blob %q", blob)
	}
}

func TestSealRejectsEmptyPassphrase(t *testing.T) {
	t.Parallel()

	_, err := SealWith(fastParams, "", []byte("x"))
	require.Error(t, err)
}
