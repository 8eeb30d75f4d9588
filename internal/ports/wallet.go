package ports

import (
	"context"

	"github.com/bnema/link-portal-cli/internal/domain"
)

// TransactionSigner signs serialized transaction messages as signer.
type TransactionSigner interface {
	Sign(ctx context.Context, signer domain.Identity, message []byte) ([]byte, error)
}

// WalletAgent grants a public identity and signing capability after user
// consent. Authenticate returns domain.ErrWalletUnavailable when no wallet
// exists and domain.ErrAuthenticationDeclined when consent is withheld.
type WalletAgent interface {
	TransactionSigner
	Authenticate(ctx context.Context, interactive bool) (domain.Identity, error)
}
