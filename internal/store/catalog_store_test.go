package store

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"costwise/internal/logging"
	"costwise/internal/types"
)

func openTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	s, err := NewCatalogStore(filepath.Join(t.TempDir(), "catalog.db"), logging.Nop())
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCatalogStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, found, err := s.LoadIngredients(ctx); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	ingredients := []types.IngredientSummary{
		{ID: 2, Name: "Guanciale", Unit: "kg", UnitCost: 18.5},
		{ID: 1, Name: "Eggs", Unit: "unit", UnitCost: 0.4},
	}
	if err := s.SaveIngredients(ctx, ingredients); err != nil {
		t.Fatalf("SaveIngredients: %v", err)
	}

	snapshot, found, err := s.LoadIngredients(ctx)
	if err != nil {
		t.Fatalf("LoadIngredients: %v", err)
	}
	if !found {
		t.Fatalf("expected a cached snapshot")
	}
	if snapshot.FetchedAt.IsZero() {
		t.Fatalf("expected a fetch timestamp")
	}
	if len(snapshot.Ingredients) != 2 || snapshot.Ingredients[0].ID != 1 {
		t.Fatalf("unexpected snapshot: %#v", snapshot.Ingredients)
	}
	if snapshot.Ingredients[1].Name != "Guanciale" {
		t.Fatalf("unexpected ingredient: %#v", snapshot.Ingredients[1])
	}
}

func TestCatalogStoreSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []types.IngredientSummary{{ID: 1, Name: "Eggs", Unit: "unit", UnitCost: 0.4}}
	if err := s.SaveIngredients(ctx, first); err != nil {
		t.Fatalf("SaveIngredients: %v", err)
	}
	second := []types.IngredientSummary{{ID: 7, Name: "Flour", Unit: "kg", UnitCost: 1.2}}
	if err := s.SaveIngredients(ctx, second); err != nil {
		t.Fatalf("SaveIngredients: %v", err)
	}

	snapshot, _, err := s.LoadIngredients(ctx)
	if err != nil {
		t.Fatalf("LoadIngredients: %v", err)
	}
	if len(snapshot.Ingredients) != 1 || snapshot.Ingredients[0].ID != 7 {
		t.Fatalf("stale rows survived the replace: %#v", snapshot.Ingredients)
	}
}

func TestInvalidateCascadesDownstream(t *testing.T) {
	s := openTestStore(t)

	if err := s.Invalidate(ScopeIngredients); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	for _, scope := range []CacheScope{ScopeIngredients, ScopeRecipes, ScopeMenuItems} {
		stale, err := s.Stale(scope)
		if err != nil {
			t.Fatalf("Stale(%s): %v", scope, err)
		}
		if !stale {
			t.Fatalf("expected %s stale after ingredient invalidation", scope)
		}
	}
}

func TestRecipeInvalidationSparesIngredients(t *testing.T) {
	s := openTestStore(t)

	if err := s.Invalidate(ScopeRecipes); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if stale, _ := s.Stale(ScopeIngredients); stale {
		t.Fatalf("ingredient scope must not be touched by a recipe invalidation")
	}
	if stale, _ := s.Stale(ScopeMenuItems); !stale {
		t.Fatalf("menu item scope should follow recipes downstream")
	}
}

func TestOnEntityCommittedRouting(t *testing.T) {
	s := openTestStore(t)

	s.OnEntityCommitted(types.KindMenuItem)
	if stale, _ := s.Stale(ScopeRecipes); stale {
		t.Fatalf("menu item commit must not invalidate recipes")
	}
	if stale, _ := s.Stale(ScopeMenuItems); !stale {
		t.Fatalf("menu item commit should invalidate menu items")
	}

	s.OnEntityCommitted(types.KindRecipe)
	if stale, _ := s.Stale(ScopeRecipes); !stale {
		t.Fatalf("recipe commit should invalidate recipes")
	}
}

func TestOnEntityCommittedWarnsWhenInvalidationFails(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewCatalogStore(filepath.Join(t.TempDir(), "catalog.db"), logging.New(&buf, logging.Warn))
	if err != nil {
		t.Fatalf("NewCatalogStore: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s.OnEntityCommitted(types.KindRecipe)
	if !strings.Contains(buf.String(), "cache invalidation failed") {
		t.Fatalf("expected a warning for the failed invalidation, got %q", buf.String())
	}
}

func TestSaveClearsIngredientStaleness(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Invalidate(ScopeIngredients); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := s.SaveIngredients(ctx, []types.IngredientSummary{{ID: 1, Name: "Eggs", Unit: "unit", UnitCost: 0.4}}); err != nil {
		t.Fatalf("SaveIngredients: %v", err)
	}
	if stale, err := s.Stale(ScopeIngredients); err != nil || stale {
		t.Fatalf("fresh snapshot should clear ingredient staleness, stale=%v err=%v", stale, err)
	}
}
