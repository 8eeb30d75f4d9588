package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	id := Identity{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}

	parsed, err := ParseIdentity(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.True(t, parsed == id)
}

func TestSystemProgramIDText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "11111111111111111111111111111111", SystemProgramID.String())
	assert.True(t, SystemProgramID.IsZero())
}

func TestParseIdentityRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "   "},
		{name: "not base58", raw: "0OIl"},
		{name: "too short", raw: "3mJr7AoUXx2Wqd"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseIdentity(tc.raw)
			require.ErrorIs(t, err, ErrInvalidIdentity)
		})
	}
}

func TestIdentityJSONUsesBase58(t *testing.T) {
	t.Parallel()

	id := Identity{9}
	raw, err := json.Marshal(struct {
		ID Identity `json:"id"`
	}{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`"}`, string(raw))

	var decoded struct {
		ID Identity `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id, decoded.ID)
}

func TestIdentityShort(t *testing.T) {
	t.Parallel()

	full := Identity{9}.String()
	short := Identity{9}.Short()
	assert.Equal(t, full[:4]+".."+full[len(full)-4:], short)
}

func TestDeploymentValidate(t *testing.T) {
	t.Parallel()

	valid := Deployment{ProgramID: Identity{1}, TargetAccount: Identity{2}, Endpoint: "https://rpc.example"}
	require.NoError(t, valid.Validate())

	missingProgram := valid
	missingProgram.ProgramID = Identity{}
	assert.ErrorContains(t, missingProgram.Validate(), "program id is required")

	same := valid
	same.TargetAccount = same.ProgramID
	assert.ErrorContains(t, same.Validate(), "must differ")

	noEndpoint := valid
	noEndpoint.Endpoint = " "
	assert.ErrorContains(t, noEndpoint.Validate(), "endpoint is required")
}
