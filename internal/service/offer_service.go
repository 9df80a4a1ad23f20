package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loanpath/backend/internal/cache"
	"github.com/loanpath/backend/internal/logger"
	"github.com/loanpath/backend/internal/model"
	"github.com/loanpath/backend/internal/provider"
)

// OfferFetcher defines the contract for the external offer feed.
type OfferFetcher interface {
	FetchOffers(ctx context.Context, loanType string) ([]model.ExternalOffer, error)
}

// refreshLoanTypes are the catalogs the scheduler keeps warm.
var refreshLoanTypes = []string{
	"Personal Loan",
	"Home Loan",
	"Car Loan",
	"Education Loan",
	"Business Loan",
}

// OfferService serves provider offers through the cache, falling back to
// the built-in catalog when the feed is unavailable. Offer retrieval
// never fails: a broken feed degrades to stale or curated data.
type OfferService struct {
	fetcher OfferFetcher
	cache   cache.OfferCache
}

// NewOfferService creates a new OfferService with the given feed client
// and cache.
func NewOfferService(fetcher OfferFetcher, offerCache cache.OfferCache) *OfferService {
	return &OfferService{fetcher: fetcher, cache: offerCache}
}

// GetOffers returns the offers for a loan type, preferring the cache.
// On a miss the feed is queried and the result cached; if the feed fails
// the curated catalog is served uncached so the next request retries.
func (s *OfferService) GetOffers(ctx context.Context, loanType string) []model.ExternalOffer {
	if offers, ok := s.cache.Get(ctx, loanType); ok {
		return offers
	}

	offers, err := s.fetcher.FetchOffers(ctx, loanType)
	if err != nil || len(offers) == 0 {
		if err != nil {
			logger.FromContext(ctx).Warn("offer feed unavailable, serving fallback catalog", "loan_type", loanType, "error", err)
		}
		return provider.FallbackOffers(loanType)
	}

	if err := s.cache.Set(ctx, loanType, offers); err != nil {
		logger.FromContext(ctx).Warn("failed to cache offers", "loan_type", loanType, "error", err)
	}
	return offers
}

// RefreshOffers re-fetches every tracked loan type and rewrites the
// cache. Returns how many loan types were refreshed; individual feed
// failures are collected rather than aborting the cycle.
func (s *OfferService) RefreshOffers(ctx context.Context) (int, error) {
	var errs []error
	refreshed := 0

	for _, loanType := range refreshLoanTypes {
		offers, err := s.fetcher.FetchOffers(ctx, loanType)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetching %s offers: %w", loanType, err))
			continue
		}
		if len(offers) == 0 {
			continue
		}
		if err := s.cache.Set(ctx, loanType, offers); err != nil {
			errs = append(errs, fmt.Errorf("caching %s offers: %w", loanType, err))
			continue
		}
		refreshed++
	}

	return refreshed, errors.Join(errs...)
}
