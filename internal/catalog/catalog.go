package catalog

import (
	"context"
	"time"

	"costwise/internal/logging"
	"costwise/internal/store"
	"costwise/internal/types"
)

// Provider lists the ingredient catalog the wizard costs recipes against.
type Provider interface {
	ListIngredients(ctx context.Context) ([]types.IngredientSummary, error)
}

// CachedProvider serves the catalog from the local cache and refreshes it
// from the remote provider when the cache is missing, stale, or past its
// time-to-live. A remote failure falls back to whatever is cached so the
// wizard stays usable offline.
type CachedProvider struct {
	remote Provider
	cache  *store.CatalogStore
	ttl    time.Duration
	log    logging.Logger
	now    func() time.Time
}

func NewCachedProvider(remote Provider, cache *store.CatalogStore, ttl time.Duration, log logging.Logger) *CachedProvider {
	if log == nil {
		log = logging.Nop()
	}
	return &CachedProvider{
		remote: remote,
		cache:  cache,
		ttl:    ttl,
		log:    log.With(logging.F("component", "catalog")),
		now:    time.Now,
	}
}

func (p *CachedProvider) ListIngredients(ctx context.Context) ([]types.IngredientSummary, error) {
	snapshot, cached, err := p.cache.LoadIngredients(ctx)
	if err != nil {
		return nil, err
	}
	if cached && p.fresh(snapshot) {
		return snapshot.Ingredients, nil
	}

	ingredients, err := p.remote.ListIngredients(ctx)
	if err != nil {
		if cached {
			p.log.Warn("catalog refresh failed, serving cached snapshot",
				logging.F("error", err.Error()),
				logging.F("fetched_at", snapshot.FetchedAt.Format(time.RFC3339)))
			return snapshot.Ingredients, nil
		}
		return nil, err
	}
	if err := p.cache.SaveIngredients(ctx, ingredients); err != nil {
		p.log.Warn("caching catalog snapshot failed", logging.F("error", err.Error()))
	}
	return ingredients, nil
}

// Refresh fetches the catalog from the remote provider unconditionally and
// replaces the cached snapshot.
func (p *CachedProvider) Refresh(ctx context.Context) ([]types.IngredientSummary, error) {
	ingredients, err := p.remote.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SaveIngredients(ctx, ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (p *CachedProvider) fresh(snapshot types.CatalogSnapshot) bool {
	if stale, err := p.cache.Stale(store.ScopeIngredients); err != nil || stale {
		return false
	}
	if p.ttl <= 0 {
		return true
	}
	return p.now().Sub(snapshot.FetchedAt) < p.ttl
}

// UnitCosts indexes a catalog listing by ingredient id for cost computation.
func UnitCosts(ingredients []types.IngredientSummary) map[int64]float64 {
	out := make(map[int64]float64, len(ingredients))
	for _, ing := range ingredients {
		out[ing.ID] = ing.UnitCost
	}
	return out
}

// FindByID returns the catalog entry for an ingredient id.
func FindByID(ingredients []types.IngredientSummary, id int64) (types.IngredientSummary, bool) {
	for _, ing := range ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return types.IngredientSummary{}, false
}
