// Package store provides resolver-level profile caching backends.
package store

import (
	"context"

	"ownergraph/internal/company/models"
)

// ProfileCache caches company profiles between traversal steps. A miss is
// (nil, nil); errors are advisory and callers fall back to the upstream
// fetch.
type ProfileCache interface {
	Find(ctx context.Context, number string) (*models.CompanyProfile, error)
	Save(ctx context.Context, profile *models.CompanyProfile) error
}
