// Package cache holds recently fetched provider offers so the comparison
// endpoints do not hit the feed on every request.
package cache

import (
	"context"

	"github.com/loanpath/backend/internal/model"
)

// OfferCache stores offer lists keyed by loan type. A miss is not an
// error; callers fall through to the provider feed.
type OfferCache interface {
	Get(ctx context.Context, key string) ([]model.ExternalOffer, bool)
	Set(ctx context.Context, key string, offers []model.ExternalOffer) error
}
