package ports

import (
	"context"

	"github.com/bnema/link-portal-cli/internal/domain"
)

type TrustRepository interface {
	Get(ctx context.Context, origin string) (domain.TrustedApp, error)
	Save(ctx context.Context, app domain.TrustedApp) error
	Delete(ctx context.Context, origin string) error
}
