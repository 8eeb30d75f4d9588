package local

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptApproverAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full word", input: " YES \n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "unterminated answer", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			approver := &PromptApprover{In: strings.NewReader(tt.input), Out: out}

			approved, err := approver.Approve(context.Background(), "link-portal", domain.Identity{1})
			require.NoError(t, err)
			assert.Equal(t, tt.want, approved)
			assert.Contains(t, out.String(), `Allow "link-portal" to connect to wallet`)
		})
	}
}

func TestPromptApproverAutoApproveDoesNotRead(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	approver := &PromptApprover{In: strings.NewReader(""), Out: out, AutoApprove: true}

	approved, err := approver.Approve(context.Background(), "link-portal", domain.Identity{1})
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Empty(t, out.String())
}

func TestPromptApproverReadsSequentialLines(t *testing.T) {
	t.Parallel()

	approver := &PromptApprover{In: strings.NewReader("phrase words\nsecret\n"), Out: &bytes.Buffer{}}

	phrase, err := approver.Ask(context.Background(), "Recovery phrase: ")
	require.NoError(t, err)
	assert.Equal(t, "phrase words", phrase)

	passphrase, err := approver.Passphrase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", passphrase)

	_, err = approver.Passphrase(context.Background())
	require.Error(t, err)
}
