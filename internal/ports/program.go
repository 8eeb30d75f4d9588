package ports

import (
	"context"

	"github.com/bnema/link-portal-cli/internal/domain"
)

type ProgramClient interface {
	Initialize(ctx context.Context, target domain.Identity, signer domain.Identity) error
	Append(ctx context.Context, target domain.Identity, signer domain.Identity, text string) error
	Fetch(ctx context.Context, target domain.Identity) ([]domain.Entry, error)
}
