package program

import (
	"testing"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCompactU16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want []byte
	}{
		{n: 0, want: []byte{0x00}},
		{n: 1, want: []byte{0x01}},
		{n: 0x7f, want: []byte{0x7f}},
		{n: 0x80, want: []byte{0x80, 0x01}},
		{n: 0x3fff, want: []byte{0xff, 0x7f}},
		{n: 0x4000, want: []byte{0x80, 0x80, 0x01}},
		{n: 0xffff, want: []byte{0xff, 0xff, 0x03}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, appendCompactU16(nil, tc.n), "n=%d", tc.n)
	}
}

func TestCompileInitializeMessage(t *testing.T) {
	t.Parallel()

	user, target, programID := domain.Identity{0x01}, domain.Identity{0x02}, domain.Identity{0x03}
	blockhash := domain.Hash{0x09}

	msg, err := compileMessage(user, blockhash, instruction{
		programID: programID,
		accounts: []accountMeta{
			{key: target, signer: true, writable: true},
			{key: user, signer: true, writable: true},
			{key: domain.SystemProgramID},
		},
		data: []byte{0xAB},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Identity{user, target, domain.SystemProgramID, programID}, msg.keys)
	assert.Equal(t, []domain.Identity{user, target}, msg.signers())

	raw := msg.serialize()
	assert.Equal(t, []byte{2, 0, 2, 4}, raw[:4])
	assert.Equal(t, user[:], raw[4:36])
	assert.Equal(t, blockhash[:], raw[4+4*32:4+5*32])

	tail := raw[4+5*32:]
	assert.Equal(t, []byte{1, 3, 3, 1, 0, 2, 1, 0xAB}, tail)
}

func TestCompileAppendMessage(t *testing.T) {
	t.Parallel()

	user, target, programID := domain.Identity{0x01}, domain.Identity{0x02}, domain.Identity{0x03}

	msg, err := compileMessage(user, domain.Hash{}, instruction{
		programID: programID,
		accounts: []accountMeta{
			{key: target, writable: true},
			{key: user, signer: true, writable: true},
		},
		data: []byte{0x01, 0x02},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Identity{user, target, programID}, msg.keys)
	assert.Equal(t, 1, msg.requiredSigs)
	assert.Equal(t, 0, msg.readonlySigned)
	assert.Equal(t, 1, msg.readonlyUnsigned)

	raw := msg.serialize()
	assert.Equal(t, []byte{1, 0, 1, 3}, raw[:4])
	assert.Equal(t, []byte{1, 2, 2, 1, 0, 2, 0x01, 0x02}, raw[4+4*32:])
}

func TestSerializeTransaction(t *testing.T) {
	t.Parallel()

	sigA := make([]byte, signatureSize)
	sigA[0] = 0xAA
	sigB := make([]byte, signatureSize)
	sigB[0] = 0xBB

	raw := serializeTransaction([][]byte{sigA, sigB}, []byte{0x01, 0x02})
	require.Len(t, raw, 1+2*signatureSize+2)
	assert.Equal(t, byte(2), raw[0])
	assert.Equal(t, byte(0xAA), raw[1])
	assert.Equal(t, byte(0xBB), raw[1+signatureSize])
	assert.Equal(t, []byte{0x01, 0x02}, raw[len(raw)-2:])
}
