package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"costwise/internal/logging"
	"costwise/internal/types"
)

var (
	bucketIngredients = []byte("ingredients")
	bucketCacheMeta   = []byte("cache_meta")
	keyFetchedAt      = []byte("ingredients_fetched_at")
)

// CacheScope identifies one cached data set. Scopes form a dependency chain:
// ingredient prices feed recipe costs, and recipe costs feed menu item costs,
// so invalidating a scope also invalidates everything downstream of it.
type CacheScope string

const (
	ScopeIngredients CacheScope = "ingredients"
	ScopeRecipes     CacheScope = "recipes"
	ScopeMenuItems   CacheScope = "menu_items"
)

func downstream(scope CacheScope) []CacheScope {
	switch scope {
	case ScopeIngredients:
		return []CacheScope{ScopeIngredients, ScopeRecipes, ScopeMenuItems}
	case ScopeRecipes:
		return []CacheScope{ScopeRecipes, ScopeMenuItems}
	case ScopeMenuItems:
		return []CacheScope{ScopeMenuItems}
	default:
		return nil
	}
}

// CatalogStore caches the ingredient catalog on disk so the wizard can cost
// recipes without hitting the server on every session.
type CatalogStore struct {
	db  *bolt.DB
	log logging.Logger
	mu  sync.Mutex
}

func NewCatalogStore(path string, log logging.Logger) (*CatalogStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog db path is required")
	}
	if log == nil {
		log = logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initCatalogSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &CatalogStore{db: db, log: log.With(logging.F("component", "catalog_store"))}, nil
}

func initCatalogSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketIngredients); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketCacheMeta); err != nil {
			return err
		}
		return nil
	})
}

func (s *CatalogStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveIngredients replaces the cached catalog with a fresh snapshot and
// clears the ingredient staleness marker.
func (s *CatalogStore) SaveIngredients(ctx context.Context, ingredients []types.IngredientSummary) error {
	if s == nil || s.db == nil {
		return errors.New("catalog store is not open")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketIngredients); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucketIfNotExists(bucketIngredients)
		if err != nil {
			return err
		}
		for _, ing := range ingredients {
			raw, err := json.Marshal(ing)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(strconv.FormatInt(ing.ID, 10)), raw); err != nil {
				return err
			}
		}
		meta := tx.Bucket(bucketCacheMeta)
		if err := meta.Put(keyFetchedAt, []byte(now.Format(time.RFC3339Nano))); err != nil {
			return err
		}
		return meta.Delete(staleKey(ScopeIngredients))
	})
}

// LoadIngredients returns the cached catalog snapshot. The second return is
// false when nothing has been cached yet.
func (s *CatalogStore) LoadIngredients(ctx context.Context) (types.CatalogSnapshot, bool, error) {
	if s == nil || s.db == nil {
		return types.CatalogSnapshot{}, false, errors.New("catalog store is not open")
	}
	var snapshot types.CatalogSnapshot
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketCacheMeta)
		raw := meta.Get(keyFetchedAt)
		if len(raw) == 0 {
			return nil
		}
		fetchedAt, err := time.Parse(time.RFC3339Nano, string(raw))
		if err != nil {
			return err
		}
		snapshot.FetchedAt = fetchedAt
		b := tx.Bucket(bucketIngredients)
		if b == nil {
			return nil
		}
		if err := b.ForEach(func(_, v []byte) error {
			var ing types.IngredientSummary
			if err := json.Unmarshal(v, &ing); err != nil {
				return err
			}
			snapshot.Ingredients = append(snapshot.Ingredients, ing)
			return nil
		}); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return types.CatalogSnapshot{}, false, err
	}
	if !found {
		return types.CatalogSnapshot{}, false, nil
	}
	sort.Slice(snapshot.Ingredients, func(i, j int) bool {
		return snapshot.Ingredients[i].ID < snapshot.Ingredients[j].ID
	})
	return snapshot, true, nil
}

// Invalidate marks a scope and everything downstream of it as stale.
func (s *CatalogStore) Invalidate(scope CacheScope) error {
	if s == nil || s.db == nil {
		return errors.New("catalog store is not open")
	}
	scopes := downstream(scope)
	if len(scopes) == 0 {
		return errors.New("unknown cache scope " + strconv.Quote(string(scope)))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketCacheMeta)
		for _, sc := range scopes {
			if err := meta.Put(staleKey(sc), []byte("1")); err != nil {
				return err
			}
		}
		return nil
	})
}

// Stale reports whether a scope has been invalidated since its last refresh.
func (s *CatalogStore) Stale(scope CacheScope) (bool, error) {
	if s == nil || s.db == nil {
		return false, errors.New("catalog store is not open")
	}
	var stale bool
	err := s.db.View(func(tx *bolt.Tx) error {
		stale = len(tx.Bucket(bucketCacheMeta).Get(staleKey(scope))) > 0
		return nil
	})
	return stale, err
}

// OnEntityCommitted marks the committed entity's scope stale so downstream
// lists get refetched. Committing a recipe also invalidates menu items, since
// menu items may embed recipe costs.
func (s *CatalogStore) OnEntityCommitted(kind types.EntityKind) {
	if s == nil || s.db == nil {
		return
	}
	var scope CacheScope
	switch kind {
	case types.KindRecipe:
		scope = ScopeRecipes
	case types.KindMenuItem:
		scope = ScopeMenuItems
	default:
		return
	}
	if err := s.Invalidate(scope); err != nil {
		s.log.Warn("cache invalidation failed",
			logging.F("scope", string(scope)),
			logging.F("error", err.Error()))
	}
}

func staleKey(scope CacheScope) []byte {
	return []byte(string(scope) + "_stale")
}
