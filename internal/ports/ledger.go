package ports

import (
	"context"

	"github.com/bnema/link-portal-cli/internal/domain"
)

type LedgerEndpoint interface {
	RecentBlockhash(ctx context.Context) (domain.Hash, error)
	// SubmitTransaction sends a signed transaction and waits for it to reach
	// the configured commitment. It returns the transaction signature.
	SubmitTransaction(ctx context.Context, raw []byte) (string, error)
	// AccountData returns the raw account bytes or domain.ErrAccountNotFound.
	AccountData(ctx context.Context, account domain.Identity) ([]byte, error)
}
