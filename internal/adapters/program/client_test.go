package program

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bnema/link-portal-cli/internal/adapters/ledger/rpc"
	"github.com/bnema/link-portal-cli/internal/adapters/wallet/keypair"
	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/testutil/fakeledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = domain.Identity{0xF0, 0x0D}

type harness struct {
	ledger *fakeledger.Ledger
	user   *keypair.Keypair
	target *keypair.Keypair
	client *Client
}

func newHarness(t *testing.T, withTargetKey bool) harness {
	t.Helper()

	ledger := fakeledger.New(t, fakeledger.Options{ProgramID: testProgramID})
	user, err := keypair.Generate()
	require.NoError(t, err)
	target, err := keypair.Generate()
	require.NoError(t, err)

	endpoint := &rpc.Client{Endpoint: ledger.URL(), PollInterval: time.Millisecond, ConfirmTimeout: time.Second}
	opts := Options{ProgramID: testProgramID}
	if withTargetKey {
		opts.TargetSigner = target
	}

	return harness{ledger: ledger, user: user, target: target, client: NewClient(endpoint, user, opts)}
}

func TestInitializeThenFetchIsEmpty(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	ctx := context.Background()

	_, err := h.client.Fetch(ctx, h.target.Identity())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, h.client.Initialize(ctx, h.target.Identity(), h.user.Identity()))

	entries, err := h.client.Fetch(ctx, h.target.Identity())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendThenFetchEndsWithEntry(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	ctx := context.Background()
	other := domain.Identity{0x77}
	h.ledger.Seed(h.target.Identity(), fakeledger.Entry{Link: "first", Submitter: other})

	require.NoError(t, h.client.Append(ctx, h.target.Identity(), h.user.Identity(), "x"))

	entries, err := h.client.Fetch(ctx, h.target.Identity())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{Link: "first", Submitter: other, Position: 0}, entries[0])
	assert.Equal(t, domain.Entry{Link: "x", Submitter: h.user.Identity(), Position: 1}, entries[1])
}

func TestFetchIsIdempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	ctx := context.Background()
	h.ledger.Seed(h.target.Identity(),
		fakeledger.Entry{Link: "a", Submitter: domain.Identity{0x01}},
		fakeledger.Entry{Link: "b", Submitter: domain.Identity{0x02}},
	)

	first, err := h.client.Fetch(ctx, h.target.Identity())
	require.NoError(t, err)
	second, err := h.client.Fetch(ctx, h.target.Identity())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInitializeTwiceIsAlreadyInitialized(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	ctx := context.Background()
	require.NoError(t, h.client.Initialize(ctx, h.target.Identity(), h.user.Identity()))

	err := h.client.Initialize(ctx, h.target.Identity(), h.user.Identity())
	require.ErrorIs(t, err, domain.ErrAlreadyInitialized)

	var rejection *domain.LedgerRejection
	require.True(t, errors.As(err, &rejection))
	assert.True(t, rejection.LogsContain("already in use"))
}

func TestInitializeWithoutTargetKeyIssuesNoRequest(t *testing.T) {
	t.Parallel()

	h := newHarness(t, false)

	err := h.client.Initialize(context.Background(), h.target.Identity(), h.user.Identity())
	require.ErrorIs(t, err, domain.ErrInsufficientAuthorization)
	assert.Zero(t, h.ledger.Calls("getLatestBlockhash"))
	assert.Zero(t, h.ledger.Calls("sendTransaction"))
}

func TestInitializeWithWrongTargetKey(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	stranger := domain.Identity{0x55}

	err := h.client.Initialize(context.Background(), stranger, h.user.Identity())
	require.ErrorIs(t, err, domain.ErrInsufficientAuthorization)
	assert.Zero(t, h.ledger.Calls("sendTransaction"))
}

func TestAppendToMissingRecordIsAccountNotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)

	err := h.client.Append(context.Background(), h.target.Identity(), h.user.Identity(), "x")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAppendWithUnauthorizedSigner(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	h.ledger.Seed(h.target.Identity())

	err := h.client.Append(context.Background(), h.target.Identity(), domain.Identity{0x42}, "x")
	require.ErrorIs(t, err, domain.ErrInsufficientAuthorization)
	assert.Empty(t, h.ledger.Entries(h.target.Identity()))
}

func TestAppendWithUnknownInstructionIsRejected(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	h.ledger.Seed(h.target.Identity())
	h.client.opts.AppendInstruction = "add_link"

	err := h.client.Append(context.Background(), h.target.Identity(), h.user.Identity(), "x")
	require.ErrorIs(t, err, domain.ErrRejectedByProgram)
}

func TestAppendNetworkFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	h.ledger.Seed(h.target.Identity())
	h.ledger.FailNext("sendTransaction", http.StatusServiceUnavailable)

	err := h.client.Append(context.Background(), h.target.Identity(), h.user.Identity(), "x")
	require.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, 1, h.ledger.Calls("sendTransaction"))
	assert.Empty(t, h.ledger.Entries(h.target.Identity()))
}

func TestFetchUndecodableAccount(t *testing.T) {
	t.Parallel()

	h := newHarness(t, true)
	h.ledger.SetAccount(h.target.Identity(), []byte("not a record"))

	_, err := h.client.Fetch(context.Background(), h.target.Identity())
	require.ErrorIs(t, err, domain.ErrDecoding)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	custom := func(code uint32) *uint32 { return &code }
	tests := []struct {
		name      string
		op        string
		rejection *domain.LedgerRejection
		want      error
	}{
		{name: "signature failure", op: "add_gif", rejection: &domain.LedgerRejection{Code: -32003}, want: domain.ErrInsufficientAuthorization},
		{name: "missing signature", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "MissingRequiredSignature"}, want: domain.ErrInsufficientAuthorization},
		{name: "anchor signer", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(3010)}, want: domain.ErrInsufficientAuthorization},
		{name: "already in use", op: "initialize", rejection: &domain.LedgerRejection{Logs: []string{"Allocate: account already in use"}}, want: domain.ErrAlreadyInitialized},
		{name: "custom zero on initialize", op: "initialize", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(0)}, want: domain.ErrAlreadyInitialized},
		{name: "custom zero on append", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(0)}, want: domain.ErrRejectedByProgram},
		{name: "not initialized", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(3012)}, want: domain.ErrAccountNotFound},
		{name: "wrong owner", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(3007)}, want: domain.ErrAccountNotFound},
		{name: "account not found", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "AccountNotFound"}, want: domain.ErrAccountNotFound},
		{name: "other", op: "add_gif", rejection: &domain.LedgerRejection{Reason: "Custom", Custom: custom(6000)}, want: domain.ErrRejectedByProgram},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(tc.op, fmt.Errorf("call sendTransaction: %w", tc.rejection))
			require.ErrorIs(t, err, tc.want)

			var rejection *domain.LedgerRejection
			assert.True(t, errors.As(err, &rejection))
		})
	}

	network := fmt.Errorf("call sendTransaction: %w", domain.ErrNetworkFailure)
	assert.Same(t, network, classify("add_gif", network))
}
